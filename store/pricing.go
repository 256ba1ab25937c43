package store

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type PricingStore struct {
	db *bun.DB
}

func NewPricingStore(db *bun.DB) *PricingStore {
	return &PricingStore{db: db}
}

// List returns all pricing categories with their plans.
func (s *PricingStore) List(ctx context.Context) ([]*PricingCategory, error) {
	var categories []*PricingCategory
	err := s.db.NewSelect().
		Model(&categories).
		Relation("Plans", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("id ASC")
		}).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pricing: %w", err)
	}
	return categories, nil
}

// CreatePlan adds a placeholder plan to a category.
func (s *PricingStore) CreatePlan(ctx context.Context, categoryID int64) (*PricingPlan, error) {
	plan := &PricingPlan{
		CategoryID:          categoryID,
		Name:                "New Plan",
		Description:         "Description here",
		Price:               "$0",
		Features:            []string{"New Feature"},
		FeaturesNotIncluded: []string{},
	}
	if _, err := s.db.NewInsert().Model(plan).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert plan: %w", err)
	}
	return plan, nil
}

func (s *PricingStore) UpdatePlan(ctx context.Context, plan *PricingPlan) error {
	res, err := s.db.NewUpdate().
		Model(plan).
		Column("name", "description", "price", "featured",
			"everything_included_prev", "features", "features_not_included").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PricingStore) DeletePlan(ctx context.Context, planID int64) error {
	res, err := s.db.NewDelete().Model((*PricingPlan)(nil)).Where("id = ?", planID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
