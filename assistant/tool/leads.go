package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	contractx "github.com/thewalkingjumbo/agency-ops/assistant/contract"
	"github.com/thewalkingjumbo/agency-ops/store"
)

const (
	ToolGetLeads       = "getLeads"
	ToolGetLeadDetails = "getLeadDetails"
)

const missingLeadNameReply = "You need to provide a name to get lead details."

// LeadDirectory is the read-only lead lookup surface the assistant's tools
// run against. *store.LeadStore satisfies it.
type LeadDirectory interface {
	ListByCountry(ctx context.Context, country string) ([]*store.Lead, error)
	FindByName(ctx context.Context, name string) (*store.Lead, error)
}

// NewCatalog builds the assistant's tool table. getLeads returns its list
// directly with a deterministic preface; getLeadDetails round-trips the
// lookup through the model so it can phrase the record as prose.
func NewCatalog(dir LeadDirectory) Catalog {
	return Catalog{
		ToolGetLeads: {
			Decl: contractx.ToolDecl{
				Name:        ToolGetLeads,
				Description: "Get a list of business leads, optionally filtered by location.",
				Params: map[string]contractx.ParamDecl{
					"location": {
						Type:        "string",
						Description: "The city or country to filter leads by, e.g., 'UK', 'USA'.",
					},
				},
			},
			RoundTrip: false,
			Run:       getLeadsHandler(dir),
		},
		ToolGetLeadDetails: {
			Decl: contractx.ToolDecl{
				Name:        ToolGetLeadDetails,
				Description: "Get all detailed information for a single lead by their name, including deal value, contact info, and notes.",
				Params: map[string]contractx.ParamDecl{
					"leadName": {
						Type:        "string",
						Description: "The full name of the lead to look up, e.g., 'Jane Smith'.",
					},
				},
				Required: []string{"leadName"},
			},
			RoundTrip: true,
			Run:       getLeadDetailsHandler(dir),
		},
	}
}

func getLeadsHandler(dir LeadDirectory) Handler {
	return func(ctx context.Context, args map[string]any) (Outcome, error) {
		// A non-string location is treated as absent.
		location, _ := args["location"].(string)
		location = strings.TrimSpace(location)

		leads, err := dir.ListByCountry(ctx, location)
		if err != nil {
			return Outcome{}, fmt.Errorf("list leads: %w", err)
		}
		if leads == nil {
			leads = []*store.Lead{}
		}

		text := "Certainly! Here are all of your current leads:"
		if location != "" {
			text = fmt.Sprintf("Here are your leads from %s:", location)
		}

		return Outcome{
			Text:    text,
			Data:    leads,
			HasData: true,
		}, nil
	}
}

func getLeadDetailsHandler(dir LeadDirectory) Handler {
	return func(ctx context.Context, args map[string]any) (Outcome, error) {
		name, _ := args["leadName"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			return Outcome{
				Text:          missingLeadNameReply,
				SkipRoundTrip: true,
			}, nil
		}

		lead, err := dir.FindByName(ctx, name)
		if errors.Is(err, store.ErrNotFound) {
			return Outcome{
				Payload: map[string]string{
					"error": fmt.Sprintf("Lead named '%s' not found.", name),
				},
				Data:    nil,
				HasData: true,
			}, nil
		}
		if err != nil {
			return Outcome{}, fmt.Errorf("find lead: %w", err)
		}

		return Outcome{
			Payload: lead,
			Data:    lead,
			HasData: true,
		}, nil
	}
}
