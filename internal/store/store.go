package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bar-status-backend/internal/model"
)

// Store defines the interface for all database operations on bar aggregates.
type Store interface {
	DB() *gorm.DB
	ListBars(ctx context.Context) ([]model.Bar, error)
	GetBar(ctx context.Context, id int64) (model.Bar, error)
	CreateBar(ctx context.Context, bar *model.Bar) error
	SaveBar(ctx context.Context, bar model.Bar) error
	SaveBars(ctx context.Context, bars []model.Bar) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection for handlers that query directly.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// ListBars loads every bar aggregate.
func (s *gormStore) ListBars(ctx context.Context) ([]model.Bar, error) {
	var bars []model.Bar
	if err := s.db.WithContext(ctx).Order("id").Find(&bars).Error; err != nil {
		return nil, fmt.Errorf("failed to list bars: %w", err)
	}
	return bars, nil
}

// GetBar loads a single bar aggregate by ID.
func (s *gormStore) GetBar(ctx context.Context, id int64) (model.Bar, error) {
	var bar model.Bar
	if err := s.db.WithContext(ctx).First(&bar, id).Error; err != nil {
		return model.Bar{}, err
	}
	return bar, nil
}

// CreateBar inserts a new bar.
func (s *gormStore) CreateBar(ctx context.Context, bar *model.Bar) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(bar).Error; err != nil {
		return fmt.Errorf("failed to create bar %q: %w", bar.Name, err)
	}
	return nil
}

// SaveBar writes back a mutated aggregate.
func (s *gormStore) SaveBar(ctx context.Context, bar model.Bar) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(&bar).Error; err != nil {
		return fmt.Errorf("failed to save bar %d: %w", bar.ID, err)
	}
	return nil
}

// SaveBars persists a reconciliation pass's changed aggregates in one
// transaction, so a tick either lands whole or not at all.
func (s *gormStore) SaveBars(ctx context.Context, bars []model.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, bar := range bars {
			if err := tx.Omit(clause.Associations).Save(&bar).Error; err != nil {
				return fmt.Errorf("failed to save bar %d: %w", bar.ID, err)
			}
		}
		return nil
	})
}
