package crm

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/thewalkingjumbo/agency-ops/store"
)

// PortfolioRepo is the persistence surface the portfolio actions need.
// *store.PortfolioStore satisfies it.
type PortfolioRepo interface {
	List(ctx context.Context) ([]*store.PortfolioItem, error)
	Create(ctx context.Context) (*store.PortfolioItem, error)
	Update(ctx context.Context, item *store.PortfolioItem) error
	Delete(ctx context.Context, id int64) error
}

type PortfolioService struct {
	repo PortfolioRepo
}

func NewPortfolioService(repo PortfolioRepo) *PortfolioService {
	return &PortfolioService{repo: repo}
}

type PortfolioItemResult struct {
	Result
	Item *store.PortfolioItem `json:"item,omitempty"`
}

// GetPortfolioData returns all case studies. Failures degrade to an empty
// list so the public page still renders.
func (s *PortfolioService) GetPortfolioData(ctx context.Context) []*store.PortfolioItem {
	items, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch portfolio")
		return []*store.PortfolioItem{}
	}
	return items
}

// CreatePortfolioItem seeds a placeholder case study for editing.
func (s *PortfolioService) CreatePortfolioItem(ctx context.Context) PortfolioItemResult {
	item, err := s.repo.Create(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to create portfolio item")
		return PortfolioItemResult{Result: fail("Failed to create portfolio item.")}
	}
	return PortfolioItemResult{Result: ok(), Item: item}
}

func (s *PortfolioService) UpdatePortfolioItem(ctx context.Context, item *store.PortfolioItem) Result {
	if item == nil || item.ID <= 0 {
		return fail(msgMissingFields)
	}
	if err := s.repo.Update(ctx, item); err != nil {
		log.Error().Err(err).Int64("item_id", item.ID).Msg("failed to update portfolio item")
		return fail("Failed to update portfolio item.")
	}
	return ok()
}

func (s *PortfolioService) DeletePortfolioItem(ctx context.Context, id int64) Result {
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Int64("item_id", id).Msg("failed to delete portfolio item")
		return fail("Failed to delete portfolio item.")
	}
	return ok()
}
