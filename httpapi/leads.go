package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/thewalkingjumbo/agency-ops/crm"
)

// handleCreateLead accepts intake submissions from the marketing site's
// contact form and normalizes them into the CRM's lead shape.
func (s *Server) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if body == nil {
		writeError(w, http.StatusBadRequest, "Request body must be a JSON object")
		return
	}

	intake, errs := validateIntake(body)
	if len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return
	}

	form := intake.leadForm()
	if result := s.leads.CreateLead(r.Context(), form); !result.Success {
		writeError(w, http.StatusInternalServerError, "Failed to persist lead")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"data": form})
}

type leadIntake struct {
	name     string
	company  string
	contact  string
	services []string
	budget   string
}

// validateIntake type-checks the raw payload field by field so the 422
// response can name every invalid field at once.
func validateIntake(body map[string]any) (leadIntake, map[string]string) {
	var intake leadIntake
	errs := map[string]string{}

	name, ok := body["name"].(string)
	if !ok || name == "" {
		errs["name"] = "name is required and must be a string"
	}
	intake.name = name

	contact, ok := body["contact"].(string)
	if !ok || contact == "" {
		errs["contact"] = "contact is required and must be a string"
	}
	intake.contact = contact

	budget, ok := body["budget"].(string)
	if !ok || budget == "" {
		errs["budget"] = "budget is required and must be a string"
	}
	intake.budget = budget

	services, ok := stringSlice(body["services"])
	if !ok {
		errs["services"] = "services is required and must be an array of strings"
	}
	intake.services = services

	if raw, present := body["company"]; present && raw != nil {
		company, ok := raw.(string)
		if !ok {
			errs["company"] = "company must be a string if provided"
		}
		intake.company = company
	}

	return intake, errs
}

func (in leadIntake) leadForm() crm.LeadForm {
	return crm.LeadForm{
		Name:           in.name,
		Email:          in.contact,
		CompanyName:    in.company,
		Currency:       "USD",
		DealValue:      in.budget,
		ProjectSummary: strings.Join(in.services, ", "),
	}
}

func stringSlice(raw any) ([]string, bool) {
	items, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
