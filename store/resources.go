package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type ResourceStore struct {
	db *bun.DB
}

func NewResourceStore(db *bun.DB) *ResourceStore {
	return &ResourceStore{db: db}
}

// List returns all knowledge-hub resources, newest first.
func (s *ResourceStore) List(ctx context.Context) ([]*Resource, error) {
	var resources []*Resource
	err := s.db.NewSelect().
		Model(&resources).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return resources, nil
}

func (s *ResourceStore) Create(ctx context.Context, res *Resource) error {
	now := time.Now()
	res.ID = uuid.NewString()
	res.CreatedAt = now
	res.UpdatedAt = now

	if _, err := s.db.NewInsert().Model(res).Exec(ctx); err != nil {
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

func (s *ResourceStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.NewDelete().Model((*Resource)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
