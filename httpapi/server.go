// Package httpapi is the public HTTP surface: lead intake from the marketing
// site, read-only portfolio and pricing collections, and the assistant chat
// endpoint.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	contractx "github.com/thewalkingjumbo/agency-ops/assistant/contract"
	"github.com/thewalkingjumbo/agency-ops/crm"
	"github.com/thewalkingjumbo/agency-ops/store"
)

// LeadCreator persists an intake lead. *crm.LeadService satisfies it.
type LeadCreator interface {
	CreateLead(ctx context.Context, form crm.LeadForm) crm.LeadResult
}

// PortfolioLister returns the public case-study collection.
// *store.PortfolioStore satisfies it.
type PortfolioLister interface {
	List(ctx context.Context) ([]*store.PortfolioItem, error)
}

// PricingLister returns the public pricing collection.
// *store.PricingStore satisfies it.
type PricingLister interface {
	List(ctx context.Context) ([]*store.PricingCategory, error)
}

// Asker runs one assistant exchange. *orchestrator.Orchestrator satisfies it.
type Asker interface {
	Ask(ctx context.Context, history []contractx.Message) (contractx.AskResult, error)
}

// Pinger reports database liveness. *bun.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	leads     LeadCreator
	portfolio PortfolioLister
	pricing   PricingLister
	assistant Asker
	db        Pinger
}

func NewServer(leads LeadCreator, portfolio PortfolioLister, pricing PricingLister, assistant Asker, db Pinger) *Server {
	return &Server{leads: leads, portfolio: portfolio, pricing: pricing, assistant: assistant, db: db}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /leads", s.handleCreateLead)
	mux.HandleFunc("GET /portfolio", s.handlePortfolio)
	mux.HandleFunc("GET /pricing", s.handlePricing)
	mux.HandleFunc("POST /assistant/chat", s.handleChat)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			log.Error().Err(err).Msg("health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response body")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
