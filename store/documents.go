package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type DocumentStore struct {
	db *bun.DB
}

func NewDocumentStore(db *bun.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Add records an uploaded document's metadata.
func (s *DocumentStore) Add(ctx context.Context, clientID, name, url string, typ DocumentType) (*Document, error) {
	doc := &Document{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Name:      name,
		URL:       url,
		Type:      typ,
		CreatedAt: time.Now(),
	}
	if _, err := s.db.NewInsert().Model(doc).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	return doc, nil
}

func (s *DocumentStore) ListByClient(ctx context.Context, clientID string) ([]*Document, error) {
	var docs []*Document
	err := s.db.NewSelect().
		Model(&docs).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.NewDelete().Model((*Document)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
