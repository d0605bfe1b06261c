package sales

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"resto-pos/internal/order"
)

type Repository interface {
	Append(ctx context.Context, sale Sale) (uint, error)
	ListAll(ctx context.Context) ([]Sale, error)
	Upsert(ctx context.Context, sale Sale) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Append(ctx context.Context, sale Sale) (uint, error) {
	items, err := json.Marshal(sale.Items)
	if err != nil {
		return 0, fmt.Errorf("failed to encode sale items: %w", err)
	}

	var id uint
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO sales (order_number, created_at, items, total, paid, change)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		sale.OrderNumber, sale.CreatedAt, items, sale.Total, sale.Paid, sale.Change,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Sale, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, order_number, created_at, items, total, paid, change FROM sales ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sale
	for rows.Next() {
		var s Sale
		var items []byte
		if err := rows.Scan(&s.ID, &s.OrderNumber, &s.CreatedAt, &items, &s.Total, &s.Paid, &s.Change); err != nil {
			return nil, err
		}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &s.Items); err != nil {
				return nil, fmt.Errorf("failed to decode sale items: %w", err)
			}
		}
		if s.Items == nil {
			s.Items = []order.CartLine{}
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

// Upsert writes a sale keeping its id, overwriting any existing row.
// Used by the import path where ids come from the export file.
func (r *repository) Upsert(ctx context.Context, sale Sale) error {
	items, err := json.Marshal(sale.Items)
	if err != nil {
		return fmt.Errorf("failed to encode sale items: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sales (id, order_number, created_at, items, total, paid, change)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			order_number = $2, created_at = $3, items = $4, total = $5, paid = $6, change = $7`,
		sale.ID, sale.OrderNumber, sale.CreatedAt, items, sale.Total, sale.Paid, sale.Change,
	)
	return err
}
