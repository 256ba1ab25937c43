package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type ClientStore struct {
	db *bun.DB
}

func NewClientStore(db *bun.DB) *ClientStore {
	return &ClientStore{db: db}
}

// List returns all clients, newest first, with interaction logs and documents.
func (s *ClientStore) List(ctx context.Context) ([]*Client, error) {
	var clients []*Client
	err := s.db.NewSelect().
		Model(&clients).
		Relation("InteractionLogs").
		Relation("Documents").
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// Update rewrites a client's editable fields.
func (s *ClientStore) Update(ctx context.Context, client *Client) error {
	client.UpdatedAt = time.Now()

	res, err := s.db.NewUpdate().
		Model(client).
		Column("name", "company_name", "email", "phone", "country", "deal_value",
			"currency", "payment_terms", "notes", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddInteraction appends a log entry and stamps the client's updated_at in
// the same transaction.
func (s *ClientStore) AddInteraction(ctx context.Context, clientID string, typ InteractionType, content string) error {
	now := time.Now()

	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		entry := &ClientInteraction{
			ID:        uuid.NewString(),
			ClientID:  clientID,
			Type:      typ,
			Content:   content,
			CreatedAt: now,
		}
		if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
			return fmt.Errorf("insert interaction: %w", err)
		}

		res, err := tx.NewUpdate().
			Model((*Client)(nil)).
			Set("updated_at = ?", now).
			Where("id = ?", clientID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("stamp client: %w", err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *ClientStore) DeleteInteraction(ctx context.Context, logID string) error {
	res, err := s.db.NewDelete().Model((*ClientInteraction)(nil)).Where("id = ?", logID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete interaction: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
