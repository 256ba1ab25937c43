package crm

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/thewalkingjumbo/agency-ops/store"
)

// PricingRepo is the persistence surface the pricing actions need.
// *store.PricingStore satisfies it.
type PricingRepo interface {
	List(ctx context.Context) ([]*store.PricingCategory, error)
	CreatePlan(ctx context.Context, categoryID int64) (*store.PricingPlan, error)
	UpdatePlan(ctx context.Context, plan *store.PricingPlan) error
	DeletePlan(ctx context.Context, planID int64) error
}

type PricingService struct {
	repo PricingRepo
}

func NewPricingService(repo PricingRepo) *PricingService {
	return &PricingService{repo: repo}
}

type PricingPlanResult struct {
	Result
	Plan *store.PricingPlan `json:"plan,omitempty"`
}

// GetPricingData returns all categories with their plans. Failures degrade
// to an empty list so the public page still renders.
func (s *PricingService) GetPricingData(ctx context.Context) []*store.PricingCategory {
	categories, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch pricing")
		return []*store.PricingCategory{}
	}
	return categories
}

// CreatePricingPlan adds a placeholder plan to a category for editing.
func (s *PricingService) CreatePricingPlan(ctx context.Context, categoryID int64) PricingPlanResult {
	if categoryID <= 0 {
		return PricingPlanResult{Result: fail(msgMissingFields)}
	}
	plan, err := s.repo.CreatePlan(ctx, categoryID)
	if err != nil {
		log.Error().Err(err).Int64("category_id", categoryID).Msg("failed to create pricing plan")
		return PricingPlanResult{Result: fail("Failed to create pricing plan.")}
	}
	return PricingPlanResult{Result: ok(), Plan: plan}
}

func (s *PricingService) UpdatePricingPlan(ctx context.Context, plan *store.PricingPlan) Result {
	if plan == nil || plan.ID <= 0 {
		return fail(msgMissingFields)
	}
	if err := s.repo.UpdatePlan(ctx, plan); err != nil {
		log.Error().Err(err).Int64("plan_id", plan.ID).Msg("failed to update pricing plan")
		return fail("Failed to update pricing plan.")
	}
	return ok()
}

func (s *PricingService) DeletePricingPlan(ctx context.Context, planID int64) Result {
	if err := s.repo.DeletePlan(ctx, planID); err != nil {
		log.Error().Err(err).Int64("plan_id", planID).Msg("failed to delete pricing plan")
		return fail("Failed to delete pricing plan.")
	}
	return ok()
}
