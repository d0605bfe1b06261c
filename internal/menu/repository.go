package menu

import (
	"context"
	"database/sql"
)

type Repository interface {
	Create(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, item Item) error
	GetAll(ctx context.Context) ([]Item, error)
	Delete(ctx context.Context, id uint) error
	Upsert(ctx context.Context, item Item) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, item Item) (Item, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO menu_items (name, price, type) VALUES ($1, $2, $3) RETURNING id",
		item.Name, item.Price, item.Type,
	).Scan(&item.ID)
	return item, err
}

func (r *repository) Update(ctx context.Context, item Item) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE menu_items SET name = $1, price = $2, type = $3 WHERE id = $4",
		item.Name, item.Price, item.Type, item.ID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) GetAll(ctx context.Context) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, price, type FROM menu_items ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Type); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM menu_items WHERE id = $1", id)
	return err
}

// Upsert writes an item keeping its id, overwriting any existing row.
// Used by the import path where ids come from the export file.
func (r *repository) Upsert(ctx context.Context, item Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO menu_items (id, name, price, type) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = $2, price = $3, type = $4`,
		item.ID, item.Name, item.Price, item.Type,
	)
	return err
}
