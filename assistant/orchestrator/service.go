// Package orchestrator runs the assistant's tool-calling round trip: forward
// the conversation to the model, honor at most one function call, and return
// a unified reply for the chat UI.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/thewalkingjumbo/agency-ops/assistant/contract"
	toolx "github.com/thewalkingjumbo/agency-ops/assistant/tool"
)

// apologyReply is the uniform user-facing text for any failure contacting
// the model. Such failures are logged and never propagated to the caller.
const apologyReply = "Sorry, I'm having trouble connecting to the AI. Please try again later."

type Orchestrator struct {
	model   contractx.ChatModel
	catalog toolx.Catalog
}

func New(model contractx.ChatModel, catalog toolx.Catalog) (*Orchestrator, error) {
	if model == nil {
		return nil, errors.New("chat model is required")
	}
	if len(catalog) == 0 {
		return nil, errors.New("tool catalog is required")
	}
	return &Orchestrator{model: model, catalog: catalog}, nil
}

// Ask sends the conversation to the model and executes at most one requested
// tool. The history is owned by the caller and replayed in full on every
// call; the last message must be the user's new utterance.
func (o *Orchestrator) Ask(ctx context.Context, history []contractx.Message) (contractx.AskResult, error) {
	if len(history) == 0 {
		return contractx.AskResult{}, fmt.Errorf("%w: history is empty", contractx.ErrValidation)
	}
	last := history[len(history)-1]
	if last.Role != contractx.RoleUser {
		return contractx.AskResult{}, fmt.Errorf("%w: last message must be from the user", contractx.ErrValidation)
	}
	if strings.TrimSpace(last.Text) == "" {
		return contractx.AskResult{}, fmt.Errorf("%w: user message is empty", contractx.ErrValidation)
	}

	session, err := o.model.StartChat(ctx, history[:len(history)-1])
	if err != nil {
		return apologize(err), nil
	}

	reply, err := session.Send(ctx, last.Text)
	if err != nil {
		return apologize(err), nil
	}

	// Only the first function-call candidate is honored.
	if len(reply.Calls) == 0 {
		return contractx.AskResult{Text: reply.Text}, nil
	}
	call := reply.Calls[0]

	entry, ok := o.catalog[call.Name]
	if !ok {
		log.Warn().Str("tool", call.Name).Msg("model requested an undeclared tool")
		return contractx.AskResult{Text: reply.Text}, nil
	}

	out, err := entry.Run(ctx, call.Args)
	if err != nil {
		return apologize(err), nil
	}

	text := out.Text
	if entry.RoundTrip && !out.SkipRoundTrip {
		second, err := session.SendToolResult(ctx, call, out.Payload)
		if err != nil {
			return apologize(err), nil
		}
		text = second.Text
	}

	result := contractx.AskResult{Text: text}
	if out.HasData {
		result.ToolData = &contractx.ToolData{Name: call.Name, Data: out.Data}
	}
	return result, nil
}

func apologize(err error) contractx.AskResult {
	log.Error().Err(err).Msg("assistant exchange failed")
	return contractx.AskResult{Text: apologyReply}
}
