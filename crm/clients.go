package crm

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/thewalkingjumbo/agency-ops/store"
)

// ClientRepo is the persistence surface the client actions need.
// *store.ClientStore satisfies it.
type ClientRepo interface {
	List(ctx context.Context) ([]*store.Client, error)
	Update(ctx context.Context, client *store.Client) error
	AddInteraction(ctx context.Context, clientID string, typ store.InteractionType, content string) error
	DeleteInteraction(ctx context.Context, logID string) error
}

type ClientService struct {
	repo ClientRepo
}

func NewClientService(repo ClientRepo) *ClientService {
	return &ClientService{repo: repo}
}

type UpdateClientForm struct {
	Name         string `json:"name"`
	CompanyName  string `json:"companyName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Country      string `json:"country"`
	DealValue    string `json:"dealValue"`
	Currency     string `json:"currency"`
	PaymentTerms string `json:"paymentTerms"`
	Notes        string `json:"notes"`
}

// GetClients returns all clients with their relations. Failures degrade to
// an empty list so the dashboard still renders.
func (s *ClientService) GetClients(ctx context.Context) []*store.Client {
	clients, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch clients")
		return []*store.Client{}
	}
	return clients
}

func (s *ClientService) UpdateClient(ctx context.Context, clientID string, form UpdateClientForm) Result {
	terms := store.PaymentTerms(form.PaymentTerms)
	if !terms.Valid() {
		log.Error().Str("payment_terms", form.PaymentTerms).Msg("invalid payment term provided")
		return fail("Invalid payment term value.")
	}

	client := &store.Client{
		ID:           clientID,
		Name:         form.Name,
		CompanyName:  form.CompanyName,
		Email:        form.Email,
		Phone:        form.Phone,
		Country:      form.Country,
		DealValue:    parseDealValue(form.DealValue),
		Currency:     form.Currency,
		PaymentTerms: terms,
		Notes:        form.Notes,
	}

	if err := s.repo.Update(ctx, client); err != nil {
		log.Error().Err(err).Str("client_id", clientID).Msg("failed to update client")
		return fail("Failed to update client.")
	}
	return okMsg("Client updated successfully.")
}

// AddInteraction logs a communication event; the store stamps the client's
// updated-at timestamp in the same transaction.
func (s *ClientService) AddInteraction(ctx context.Context, clientID string, typ store.InteractionType, content string) Result {
	if strings.TrimSpace(clientID) == "" || !typ.Valid() || strings.TrimSpace(content) == "" {
		return fail(msgMissingFields)
	}
	if err := s.repo.AddInteraction(ctx, clientID, typ, content); err != nil {
		log.Error().Err(err).Str("client_id", clientID).Msg("failed to add interaction log")
		return fail("Database error.")
	}
	return ok()
}

func (s *ClientService) DeleteInteraction(ctx context.Context, logID string) Result {
	if err := s.repo.DeleteInteraction(ctx, logID); err != nil {
		log.Error().Err(err).Str("log_id", logID).Msg("failed to delete interaction log")
		return fail("Database error.")
	}
	return ok()
}
