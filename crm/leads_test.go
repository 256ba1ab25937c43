package crm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/thewalkingjumbo/agency-ops/store"
)

type fakeLeadRepo struct {
	leads      map[int64]*store.Lead
	clients    []*store.Client
	createErr  error
	updateErr  error
	deleteErr  error
	logErr     error
	convertErr error
	created    []*store.Lead
	notes      [][]string
	logged     []store.LeadInteraction
}

func newFakeLeadRepo(leads ...*store.Lead) *fakeLeadRepo {
	repo := &fakeLeadRepo{leads: map[int64]*store.Lead{}}
	for _, lead := range leads {
		repo.leads[lead.ID] = lead
	}
	return repo
}

func (f *fakeLeadRepo) List(ctx context.Context) ([]*store.Lead, error) {
	out := make([]*store.Lead, 0, len(f.leads))
	for _, lead := range f.leads {
		out = append(out, lead)
	}
	return out, nil
}

func (f *fakeLeadRepo) Create(ctx context.Context, lead *store.Lead, notes []string) error {
	if f.createErr != nil {
		return f.createErr
	}
	lead.ID = int64(len(f.leads) + 1)
	f.leads[lead.ID] = lead
	f.created = append(f.created, lead)
	f.notes = append(f.notes, notes)
	return nil
}

func (f *fakeLeadRepo) Update(ctx context.Context, lead *store.Lead, notes []string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.leads[lead.ID]; !ok {
		return store.ErrNotFound
	}
	f.leads[lead.ID] = lead
	f.notes = append(f.notes, notes)
	return nil
}

func (f *fakeLeadRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.leads, id)
	return nil
}

func (f *fakeLeadRepo) AddInteraction(ctx context.Context, leadID int64, typ store.InteractionType, content string) error {
	if f.logErr != nil {
		return f.logErr
	}
	lead, ok := f.leads[leadID]
	if !ok {
		return store.ErrNotFound
	}
	f.logged = append(f.logged, store.LeadInteraction{LeadID: leadID, Type: typ, Content: content})
	lead.LastContacted = time.Now()
	return nil
}

func (f *fakeLeadRepo) ConvertToClient(ctx context.Context, leadID int64) (*store.Client, error) {
	if f.convertErr != nil {
		return nil, f.convertErr
	}
	lead, ok := f.leads[leadID]
	if !ok {
		return nil, store.ErrNotFound
	}
	client := &store.Client{
		ID:           uuid.NewString(),
		Name:         lead.Name,
		CompanyName:  lead.Company,
		Email:        lead.Email,
		Country:      lead.Country,
		DealValue:    lead.DealValue,
		Currency:     lead.Currency,
		Status:       store.ClientActive,
		PaymentTerms: store.TermsFiftyFifty,
	}
	delete(f.leads, leadID)
	f.clients = append(f.clients, client)
	return client, nil
}

func TestCreateLeadValidation(t *testing.T) {
	t.Parallel()

	svc := NewLeadService(newFakeLeadRepo())

	result := svc.CreateLead(context.Background(), LeadForm{Email: "a@b.test"})
	if result.Success || result.Message != "Missing required fields." {
		t.Fatalf("expected missing-fields failure, got %+v", result.Result)
	}

	result = svc.CreateLead(context.Background(), LeadForm{Name: "Acme"})
	if result.Success {
		t.Fatalf("expected failure without email, got %+v", result.Result)
	}
}

func TestCreateLeadDefaults(t *testing.T) {
	t.Parallel()

	repo := newFakeLeadRepo()
	svc := NewLeadService(repo)

	result := svc.CreateLead(context.Background(), LeadForm{
		Name:         "Acme",
		Email:        "a@b.test",
		DealValue:    "5000-8000",
		ContactNotes: "first line\n\n  second line  \n",
	})
	if !result.Success {
		t.Fatalf("CreateLead failed: %+v", result.Result)
	}
	lead := result.Lead
	if lead.LeadStage != store.StageNew {
		t.Fatalf("expected NEW stage, got %s", lead.LeadStage)
	}
	if lead.DealValue != 5000 {
		t.Fatalf("expected leading digits parsed, got %d", lead.DealValue)
	}
	if lead.LeadScore < 65 || lead.LeadScore > 85 {
		t.Fatalf("lead score out of range: %d", lead.LeadScore)
	}
	if lead.LastContacted.IsZero() {
		t.Fatalf("expected lastContacted stamped")
	}
	if got := repo.notes[0]; len(got) != 2 || got[0] != "first line" || got[1] != "second line" {
		t.Fatalf("unexpected notes: %v", got)
	}
}

func TestConvertToClientCopiesFieldsAndDeletesLead(t *testing.T) {
	t.Parallel()

	repo := newFakeLeadRepo(&store.Lead{ID: 5, Name: "Acme", DealValue: 1000, Currency: "USD"})
	svc := NewLeadService(repo)

	result := svc.ConvertToClient(context.Background(), 5)
	if !result.Success {
		t.Fatalf("ConvertToClient failed: %+v", result.Result)
	}
	if result.Message != "Converted Acme to a client." {
		t.Fatalf("unexpected message: %q", result.Message)
	}
	if _, still := repo.leads[5]; still {
		t.Fatalf("lead must be deleted after conversion")
	}
	if len(repo.clients) != 1 {
		t.Fatalf("expected exactly one client, got %d", len(repo.clients))
	}
	client := repo.clients[0]
	if client.Name != "Acme" || client.DealValue != 1000 || client.Currency != "USD" {
		t.Fatalf("commercial fields not copied: %+v", client)
	}
	if client.Status != store.ClientActive {
		t.Fatalf("expected default ACTIVE status, got %s", client.Status)
	}
}

func TestConvertToClientNotFound(t *testing.T) {
	t.Parallel()

	svc := NewLeadService(newFakeLeadRepo())

	result := svc.ConvertToClient(context.Background(), 99)
	if result.Success || result.Message != "Lead not found." {
		t.Fatalf("expected not-found failure, got %+v", result.Result)
	}

	svc = NewLeadService(&fakeLeadRepo{convertErr: errors.New("tx aborted")})
	result = svc.ConvertToClient(context.Background(), 1)
	if result.Success || result.Message != "An unknown error occurred." {
		t.Fatalf("expected generic failure, got %+v", result.Result)
	}
}

func TestAddInteractionStampsLastContacted(t *testing.T) {
	t.Parallel()

	before := time.Now().Add(-24 * time.Hour)
	repo := newFakeLeadRepo(&store.Lead{ID: 1, Name: "Acme", LastContacted: before})
	svc := NewLeadService(repo)

	result := svc.AddInteraction(context.Background(), 1, store.InteractionCall, "intro call")
	if !result.Success {
		t.Fatalf("AddInteraction failed: %+v", result)
	}
	if !repo.leads[1].LastContacted.After(before) {
		t.Fatalf("lastContacted not advanced")
	}
	if len(repo.logged) != 1 || repo.logged[0].Type != store.InteractionCall {
		t.Fatalf("unexpected log entries: %+v", repo.logged)
	}
}

func TestAddInteractionValidation(t *testing.T) {
	t.Parallel()

	svc := NewLeadService(newFakeLeadRepo())

	result := svc.AddInteraction(context.Background(), 0, store.InteractionCall, "x")
	if result.Success || result.Message != "Missing required fields." {
		t.Fatalf("expected missing-fields failure, got %+v", result)
	}
	result = svc.AddInteraction(context.Background(), 1, "WAVE", "x")
	if result.Success {
		t.Fatalf("expected failure for unknown interaction type")
	}
	result = svc.AddInteraction(context.Background(), 1, store.InteractionCall, "   ")
	if result.Success {
		t.Fatalf("expected failure for blank content")
	}
}

func TestParseDealValue(t *testing.T) {
	t.Parallel()

	cases := map[string]int64{
		"1000":         1000,
		" 2500 ":       2500,
		"5000-8000":    5000,
		"$1000":        0,
		"call me":      0,
		"":             0,
		"750 per week": 750,
	}
	for in, want := range cases {
		if got := parseDealValue(in); got != want {
			t.Fatalf("parseDealValue(%q) = %d, want %d", in, got, want)
		}
	}
}
