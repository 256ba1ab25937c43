package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	contractx "github.com/thewalkingjumbo/agency-ops/assistant/contract"
)

type chatRequest struct {
	History []contractx.Message `json:"history"`
}

// handleChat runs one assistant exchange. The caller owns the conversation
// history and replays it in full on every request.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := s.assistant.Ask(r.Context(), req.History)
	if errors.Is(err, contractx.ErrValidation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("assistant exchange failed")
		writeError(w, http.StatusInternalServerError, "Assistant is unavailable")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
