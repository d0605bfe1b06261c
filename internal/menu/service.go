package menu

import (
	"context"
	"strings"
)

// Service defines the business logic for the menu catalog.
type Service interface {
	CreateItem(ctx context.Context, item Item) (Item, error)
	UpdateItem(ctx context.Context, item Item) error
	ListItems(ctx context.Context) ([]Item, error)
	DeleteItem(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService creates a new menu service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validate(item Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return ErrInvalidName
	}
	if item.Price <= 0 {
		return ErrInvalidPrice
	}
	if !ValidType(item.Type) {
		return ErrInvalidType
	}
	return nil
}

func (s *service) CreateItem(ctx context.Context, item Item) (Item, error) {
	item.Name = strings.TrimSpace(item.Name)
	if err := validate(item); err != nil {
		return Item{}, err
	}
	return s.repo.Create(ctx, item)
}

func (s *service) UpdateItem(ctx context.Context, item Item) error {
	item.Name = strings.TrimSpace(item.Name)
	if err := validate(item); err != nil {
		return err
	}
	return s.repo.Update(ctx, item)
}

func (s *service) ListItems(ctx context.Context) ([]Item, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) DeleteItem(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
