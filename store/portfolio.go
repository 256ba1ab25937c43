package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/uptrace/bun"
)

type PortfolioStore struct {
	db *bun.DB
}

func NewPortfolioStore(db *bun.DB) *PortfolioStore {
	return &PortfolioStore{db: db}
}

// List returns all case studies with their testimonial and stats.
func (s *PortfolioStore) List(ctx context.Context) ([]*PortfolioItem, error) {
	var items []*PortfolioItem
	err := s.db.NewSelect().
		Model(&items).
		Relation("Testimonial").
		Relation("Stats").
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list portfolio: %w", err)
	}
	return items, nil
}

// Create seeds a new case study with placeholder content plus empty
// testimonial and stats rows.
func (s *PortfolioStore) Create(ctx context.Context) (*PortfolioItem, error) {
	item := &PortfolioItem{
		CompanyName:     "Untitled Project",
		Industry:        "Tech",
		Location:        "Remote",
		HeroLine:        "Project Headline",
		ProjectDuration: strconv.Itoa(time.Now().Year()),
		Services:        []string{},
		Media:           []string{},
	}

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(item).Exec(ctx); err != nil {
			return fmt.Errorf("insert portfolio item: %w", err)
		}

		item.Testimonial = &Testimonial{PortfolioItemID: item.ID}
		if _, err := tx.NewInsert().Model(item.Testimonial).Exec(ctx); err != nil {
			return fmt.Errorf("insert testimonial: %w", err)
		}

		item.Stats = &PortfolioStats{PortfolioItemID: item.ID}
		if _, err := tx.NewInsert().Model(item.Stats).Exec(ctx); err != nil {
			return fmt.Errorf("insert stats: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Update rewrites a case study and upserts its testimonial and stats.
func (s *PortfolioStore) Update(ctx context.Context, item *PortfolioItem) error {
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(item).
			Column("company_name", "company_logo", "industry", "location", "website",
				"hero_line", "hero_image", "description", "project_duration",
				"problem_statement", "solution", "results", "services", "media").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update portfolio item: %w", err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return ErrNotFound
		}

		if item.Testimonial != nil {
			item.Testimonial.PortfolioItemID = item.ID
			_, err := tx.NewInsert().
				Model(item.Testimonial).
				On("CONFLICT (portfolio_item_id) DO UPDATE").
				Set("quote = EXCLUDED.quote").
				Set("author = EXCLUDED.author").
				Set("designation = EXCLUDED.designation").
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("upsert testimonial: %w", err)
			}
		}

		if item.Stats != nil {
			item.Stats.PortfolioItemID = item.ID
			_, err := tx.NewInsert().
				Model(item.Stats).
				On("CONFLICT (portfolio_item_id) DO UPDATE").
				Set("conversion_rate_increase = EXCLUDED.conversion_rate_increase").
				Set("traffic_growth = EXCLUDED.traffic_growth").
				Set("user_growth = EXCLUDED.user_growth").
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("upsert stats: %w", err)
			}
		}
		return nil
	})
}

func (s *PortfolioStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.NewDelete().Model((*PortfolioItem)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete portfolio item: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
