package tool

import (
	"context"

	contractx "github.com/thewalkingjumbo/agency-ops/assistant/contract"
)

// Handler executes one tool invocation with the raw arguments the model
// supplied. Malformed arguments are handled defensively, never returned as
// errors; errors are reserved for backend failures.
type Handler func(ctx context.Context, args map[string]any) (Outcome, error)

// Outcome is what a tool produced and how the orchestrator should present it.
type Outcome struct {
	// Text is the deterministic reply used when the result is not
	// round-tripped through the model.
	Text string
	// Payload is serialized and fed back into the model session when the
	// entry's RoundTrip flag is set.
	Payload any
	// Data is the raw result handed to the UI renderer.
	Data any
	// HasData reports whether Data should be attached to the reply. A found
	// lead and a nil not-found marker both set it; a validation failure
	// does not.
	HasData bool
	// SkipRoundTrip suppresses the second model call even for a round-trip
	// entry (argument validation failures).
	SkipRoundTrip bool
}

// Entry binds a tool declaration to its handler. RoundTrip decides whether
// the result goes back through the model for a phrased answer or is returned
// directly with a deterministic preface.
type Entry struct {
	Decl      contractx.ToolDecl
	RoundTrip bool
	Run       Handler
}

// Catalog maps tool name to entry. Dispatch is a plain lookup, so adding a
// tool is one more entry here.
type Catalog map[string]Entry

// Declarations returns the tool schemas to send to the model, in a stable
// order.
func (c Catalog) Declarations() []contractx.ToolDecl {
	names := []string{ToolGetLeads, ToolGetLeadDetails}
	decls := make([]contractx.ToolDecl, 0, len(c))
	for _, name := range names {
		if entry, ok := c[name]; ok {
			decls = append(decls, entry.Decl)
		}
	}
	for name, entry := range c {
		switch name {
		case ToolGetLeads, ToolGetLeadDetails:
		default:
			decls = append(decls, entry.Decl)
		}
	}
	return decls
}
