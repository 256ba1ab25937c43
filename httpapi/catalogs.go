package httpapi

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// handlePortfolio serves the public case-study collection. The payload is
// CDN-cacheable since it changes only when a case study is edited.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	items, err := s.portfolio.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load portfolio")
		writeError(w, http.StatusInternalServerError, "Failed to load portfolio")
		return
	}
	w.Header().Set("Cache-Control", "public, s-maxage=300, stale-while-revalidate=600")
	writeJSON(w, http.StatusOK, map[string]any{"data": items})
}

func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	categories, err := s.pricing.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load pricing")
		writeError(w, http.StatusInternalServerError, "Failed to load pricing")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": categories})
}
