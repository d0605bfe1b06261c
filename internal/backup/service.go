// Package backup snapshots the catalog and sales history to a JSON document
// and restores such documents by upserting records under their original ids.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resto-pos/internal/menu"
	"resto-pos/internal/sales"
)

var ErrBadImport = errors.New("malformed import document")

// Document is the export file shape. Missing arrays on import are treated as
// empty, not as an error.
type Document struct {
	ExportedAt time.Time    `json:"exportedAt"`
	Items      []menu.Item  `json:"items"`
	Sales      []sales.Sale `json:"sales"`
}

type Service interface {
	Export(ctx context.Context) (Document, error)
	Import(ctx context.Context, raw []byte) error
}

type service struct {
	menuRepo  menu.Repository
	salesRepo sales.Repository
}

func NewService(menuRepo menu.Repository, salesRepo sales.Repository) Service {
	return &service{menuRepo: menuRepo, salesRepo: salesRepo}
}

func (s *service) Export(ctx context.Context) (Document, error) {
	items, err := s.menuRepo.GetAll(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("failed to export menu items: %w", err)
	}

	all, err := s.salesRepo.ListAll(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("failed to export sales: %w", err)
	}

	if items == nil {
		items = []menu.Item{}
	}
	if all == nil {
		all = []sales.Sale{}
	}

	return Document{
		ExportedAt: time.Now(),
		Items:      items,
		Sales:      all,
	}, nil
}

// Import upserts every record by id; pre-existing ids are overwritten whole.
// Items and sales are independent collections, so a failure in one leaves
// whatever the other already applied.
func (s *service) Import(ctx context.Context, raw []byte) error {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrBadImport, err)
	}

	for _, item := range doc.Items {
		if err := s.menuRepo.Upsert(ctx, item); err != nil {
			return fmt.Errorf("failed to import menu item %d: %w", item.ID, err)
		}
	}

	for _, sale := range doc.Sales {
		if err := s.salesRepo.Upsert(ctx, sale); err != nil {
			return fmt.Errorf("failed to import sale %d: %w", sale.ID, err)
		}
	}

	return nil
}
