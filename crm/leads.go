package crm

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/thewalkingjumbo/agency-ops/store"
)

// LeadRepo is the persistence surface the lead actions need.
// *store.LeadStore satisfies it.
type LeadRepo interface {
	List(ctx context.Context) ([]*store.Lead, error)
	Create(ctx context.Context, lead *store.Lead, notes []string) error
	Update(ctx context.Context, lead *store.Lead, notes []string) error
	Delete(ctx context.Context, id int64) error
	AddInteraction(ctx context.Context, leadID int64, typ store.InteractionType, content string) error
	ConvertToClient(ctx context.Context, leadID int64) (*store.Client, error)
}

type LeadService struct {
	repo LeadRepo
}

func NewLeadService(repo LeadRepo) *LeadService {
	return &LeadService{repo: repo}
}

// LeadForm is the shape of lead intake data. DealValue arrives as free text
// and is parsed; unparseable values become 0.
type LeadForm struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	CompanyName    string `json:"companyName"`
	Industry       string `json:"industry"`
	Country        string `json:"country"`
	DealValue      string `json:"dealValue"`
	Currency       string `json:"currency"`
	ProjectSummary string `json:"projectSummary"`
	ContactNotes   string `json:"contactNotes"`
}

// UpdateLeadForm is LeadForm without the email, which is immutable after
// creation.
type UpdateLeadForm struct {
	Name           string `json:"name"`
	CompanyName    string `json:"companyName"`
	Industry       string `json:"industry"`
	Country        string `json:"country"`
	DealValue      string `json:"dealValue"`
	Currency       string `json:"currency"`
	ProjectSummary string `json:"projectSummary"`
	ContactNotes   string `json:"contactNotes"`
}

type LeadResult struct {
	Result
	Lead *store.Lead `json:"lead,omitempty"`
}

type ConvertResult struct {
	Result
	Client *store.Client `json:"client,omitempty"`
}

func (s *LeadService) FetchLeads(ctx context.Context) ([]*store.Lead, error) {
	return s.repo.List(ctx)
}

func (s *LeadService) CreateLead(ctx context.Context, form LeadForm) LeadResult {
	if strings.TrimSpace(form.Name) == "" || strings.TrimSpace(form.Email) == "" {
		return LeadResult{Result: fail(msgMissingFields)}
	}

	lead := &store.Lead{
		Name:           form.Name,
		Email:          form.Email,
		Company:        form.CompanyName,
		Industry:       form.Industry,
		Country:        form.Country,
		DealValue:      parseDealValue(form.DealValue),
		Currency:       form.Currency,
		ProjectSummary: form.ProjectSummary,
		LeadStage:      store.StageNew,
		LeadScore:      scoreLead(),
		LastContacted:  time.Now(),
	}

	if err := s.repo.Create(ctx, lead, splitNotes(form.ContactNotes)); err != nil {
		log.Error().Err(err).Msg("failed to create lead")
		return LeadResult{Result: fail("Failed to create lead.")}
	}
	return LeadResult{Result: ok(), Lead: lead}
}

func (s *LeadService) UpdateLead(ctx context.Context, id int64, form UpdateLeadForm) LeadResult {
	if id <= 0 || strings.TrimSpace(form.Name) == "" {
		return LeadResult{Result: fail(msgMissingFields)}
	}

	lead := &store.Lead{
		ID:             id,
		Name:           form.Name,
		Company:        form.CompanyName,
		Industry:       form.Industry,
		Country:        form.Country,
		DealValue:      parseDealValue(form.DealValue),
		Currency:       form.Currency,
		ProjectSummary: form.ProjectSummary,
	}

	if err := s.repo.Update(ctx, lead, splitNotes(form.ContactNotes)); err != nil {
		log.Error().Err(err).Int64("lead_id", id).Msg("failed to update lead")
		return LeadResult{Result: fail("Failed to update lead.")}
	}
	return LeadResult{Result: ok(), Lead: lead}
}

func (s *LeadService) DeleteLead(ctx context.Context, id int64) Result {
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Int64("lead_id", id).Msg("failed to delete lead")
		return fail("Failed to delete lead.")
	}
	return ok()
}

// AddInteraction logs a communication event; the store stamps the lead's
// last-contacted timestamp in the same transaction.
func (s *LeadService) AddInteraction(ctx context.Context, leadID int64, typ store.InteractionType, content string) Result {
	if leadID <= 0 || !typ.Valid() || strings.TrimSpace(content) == "" {
		return fail(msgMissingFields)
	}
	if err := s.repo.AddInteraction(ctx, leadID, typ, content); err != nil {
		log.Error().Err(err).Int64("lead_id", leadID).Msg("failed to add interaction log")
		return fail("Database error.")
	}
	return ok()
}

// ConvertToClient promotes a lead to a client in one transaction.
func (s *LeadService) ConvertToClient(ctx context.Context, leadID int64) ConvertResult {
	client, err := s.repo.ConvertToClient(ctx, leadID)
	if errors.Is(err, store.ErrNotFound) {
		return ConvertResult{Result: fail("Lead not found.")}
	}
	if err != nil {
		log.Error().Err(err).Int64("lead_id", leadID).Msg("failed to convert lead to client")
		return ConvertResult{Result: fail("An unknown error occurred.")}
	}
	return ConvertResult{
		Result: okMsg("Converted " + client.Name + " to a client."),
		Client: client,
	}
}

// splitNotes turns a textarea blob into one note per non-blank line.
func splitNotes(raw string) []string {
	var notes []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			notes = append(notes, trimmed)
		}
	}
	return notes
}

func parseDealValue(raw string) int64 {
	digits := strings.TrimSpace(raw)
	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}
	value, err := strconv.ParseInt(digits[:end], 10, 64)
	if err != nil {
		return 0
	}
	return value
}

// scoreLead assigns an initial lead score in [65, 85].
func scoreLead() int {
	return 65 + rand.IntN(21)
}
