package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LeadStore owns every query that touches the leads table and its children.
type LeadStore struct {
	db *bun.DB
}

func NewLeadStore(db *bun.DB) *LeadStore {
	return &LeadStore{db: db}
}

// List returns all leads, newest first, with notes and interaction logs in
// chronological order.
func (s *LeadStore) List(ctx context.Context) ([]*Lead, error) {
	var leads []*Lead
	err := s.db.NewSelect().
		Model(&leads).
		Relation("ContactNotes", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("created_at ASC")
		}).
		Relation("InteractionLogs", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("created_at ASC")
		}).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

// ListByCountry filters leads by country, case-insensitively. An empty
// country returns every lead.
func (s *LeadStore) ListByCountry(ctx context.Context, country string) ([]*Lead, error) {
	var leads []*Lead
	q := s.db.NewSelect().Model(&leads).Order("created_at DESC")
	if country != "" {
		q = q.Where("lower(country) = lower(?)", country)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list leads by country: %w", err)
	}
	return leads, nil
}

// FindByName looks up a lead by case-insensitive exact name match. When two
// leads share a name the lowest id wins.
func (s *LeadStore) FindByName(ctx context.Context, name string) (*Lead, error) {
	lead := new(Lead)
	err := s.db.NewSelect().
		Model(lead).
		Where("lower(name) = lower(?)", name).
		Order("id ASC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lead by name: %w", err)
	}
	return lead, nil
}

// Create inserts a lead together with its initial notes and the first
// interaction log entry in one transaction.
func (s *LeadStore) Create(ctx context.Context, lead *Lead, notes []string) error {
	now := time.Now()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(lead).Exec(ctx); err != nil {
			return fmt.Errorf("insert lead: %w", err)
		}

		for _, content := range notes {
			note := &Note{LeadID: lead.ID, Content: content, CreatedAt: now}
			if _, err := tx.NewInsert().Model(note).Exec(ctx); err != nil {
				return fmt.Errorf("insert note: %w", err)
			}
		}

		first := &LeadInteraction{
			LeadID:    lead.ID,
			Type:      InteractionNoteAdded,
			Content:   "Lead created. Initial summary: " + lead.ProjectSummary,
			CreatedAt: now,
		}
		if _, err := tx.NewInsert().Model(first).Exec(ctx); err != nil {
			return fmt.Errorf("insert initial interaction: %w", err)
		}
		return nil
	})
}

// Update rewrites the lead's editable fields and replaces its notes.
func (s *LeadStore) Update(ctx context.Context, lead *Lead, notes []string) error {
	now := time.Now()
	lead.UpdatedAt = now

	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*Note)(nil)).Where("lead_id = ?", lead.ID).Exec(ctx); err != nil {
			return fmt.Errorf("delete notes: %w", err)
		}

		res, err := tx.NewUpdate().
			Model(lead).
			Column("name", "company", "industry", "country", "deal_value", "currency", "project_summary", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update lead: %w", err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return ErrNotFound
		}

		for _, content := range notes {
			note := &Note{LeadID: lead.ID, Content: content, CreatedAt: now}
			if _, err := tx.NewInsert().Model(note).Exec(ctx); err != nil {
				return fmt.Errorf("insert note: %w", err)
			}
		}
		return nil
	})
}

func (s *LeadStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.NewDelete().Model((*Lead)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddInteraction appends a log entry and stamps the lead's last_contacted in
// the same transaction, so the two never drift apart.
func (s *LeadStore) AddInteraction(ctx context.Context, leadID int64, typ InteractionType, content string) error {
	now := time.Now()

	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		entry := &LeadInteraction{LeadID: leadID, Type: typ, Content: content, CreatedAt: now}
		if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
			return fmt.Errorf("insert interaction: %w", err)
		}

		res, err := tx.NewUpdate().
			Model((*Lead)(nil)).
			Set("last_contacted = ?", now).
			Set("updated_at = ?", now).
			Where("id = ?", leadID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("stamp lead: %w", err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ConvertToClient atomically creates a client from a lead's commercial fields
// and deletes the lead. The delete carries a rows-affected check so two
// concurrent conversions of the same lead cannot both succeed.
func (s *LeadStore) ConvertToClient(ctx context.Context, leadID int64) (*Client, error) {
	now := time.Now()
	client := new(Client)

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		lead := new(Lead)
		err := tx.NewSelect().Model(lead).Where("id = ?", leadID).Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("load lead: %w", err)
		}

		*client = Client{
			ID:           uuid.NewString(),
			Name:         lead.Name,
			CompanyName:  lead.Company,
			Email:        lead.Email,
			Country:      lead.Country,
			DealValue:    lead.DealValue,
			Currency:     lead.Currency,
			Status:       ClientActive,
			PaymentTerms: TermsFiftyFifty,
			StartDate:    now,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := tx.NewInsert().Model(client).Exec(ctx); err != nil {
			return fmt.Errorf("insert client: %w", err)
		}

		res, err := tx.NewDelete().Model((*Lead)(nil)).Where("id = ?", leadID).Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete lead: %w", err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			// Lost the race to another conversion.
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
