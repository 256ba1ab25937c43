package crm

import (
	"context"
	"errors"
	"testing"

	"github.com/thewalkingjumbo/agency-ops/store"
)

type fakePortfolioRepo struct {
	items     []*store.PortfolioItem
	listErr   error
	createErr error
	updateErr error
	updated   []*store.PortfolioItem
}

func (f *fakePortfolioRepo) List(ctx context.Context) ([]*store.PortfolioItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakePortfolioRepo) Create(ctx context.Context) (*store.PortfolioItem, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &store.PortfolioItem{ID: 1, CompanyName: "Untitled Project"}, nil
}

func (f *fakePortfolioRepo) Update(ctx context.Context, item *store.PortfolioItem) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, item)
	return nil
}

func (f *fakePortfolioRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func TestGetPortfolioDataDegradesToEmpty(t *testing.T) {
	t.Parallel()

	svc := NewPortfolioService(&fakePortfolioRepo{listErr: errors.New("db down")})

	items := svc.GetPortfolioData(context.Background())
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}
}

func TestCreatePortfolioItemSeedsPlaceholder(t *testing.T) {
	t.Parallel()

	svc := NewPortfolioService(&fakePortfolioRepo{})

	result := svc.CreatePortfolioItem(context.Background())
	if !result.Success || result.Item == nil {
		t.Fatalf("CreatePortfolioItem failed: %+v", result.Result)
	}
	if result.Item.CompanyName != "Untitled Project" {
		t.Fatalf("unexpected placeholder: %+v", result.Item)
	}
}

func TestUpdatePortfolioItemValidation(t *testing.T) {
	t.Parallel()

	repo := &fakePortfolioRepo{}
	svc := NewPortfolioService(repo)

	result := svc.UpdatePortfolioItem(context.Background(), nil)
	if result.Success {
		t.Fatalf("expected failure for nil item")
	}
	result = svc.UpdatePortfolioItem(context.Background(), &store.PortfolioItem{ID: 0})
	if result.Success {
		t.Fatalf("expected failure for missing id")
	}
	if len(repo.updated) != 0 {
		t.Fatalf("nothing must be persisted on validation failure")
	}
}
