// Package gemini adapts the Gemini API to the assistant's ChatModel
// contract: system instruction and function declarations are fixed on the
// model, history is replayed into a fresh chat per exchange.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	contractx "github.com/thewalkingjumbo/agency-ops/assistant/contract"
	"google.golang.org/genai"
)

type Config struct {
	APIKey          string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model           string        `envconfig:"MODEL" split_words:"true" default:"gemini-2.5-flash-lite"`
	Temperature     float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	MaxOutputTokens int32         `envconfig:"MAX_OUTPUT_TOKENS" split_words:"true" default:"2000"`
	Timeout         time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

type Model struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

var _ contractx.ChatModel = (*Model)(nil)

// NewModel creates a Gemini-backed chat model with the given system
// instruction and tool declarations.
func NewModel(ctx context.Context, cfg Config, system string, decls []contractx.ToolDecl) (*Model, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: gemini api key is required", contractx.ErrValidation)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     strings.TrimSpace(cfg.APIKey),
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	temperature := cfg.Temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
	}
	if system = strings.TrimSpace(system); system != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(system, genai.RoleModel)
	}
	if len(decls) > 0 {
		genConfig.Tools = []*genai.Tool{{FunctionDeclarations: toDeclarations(decls)}}
	}

	return &Model{
		client: client,
		model:  strings.TrimSpace(cfg.Model),
		config: genConfig,
	}, nil
}

func (m *Model) StartChat(ctx context.Context, history []contractx.Message) (contractx.ChatSession, error) {
	chat, err := m.client.Chats.Create(ctx, m.model, m.config, toContents(history))
	if err != nil {
		return nil, fmt.Errorf("%w: start chat: %v", contractx.ErrModelInvoke, err)
	}
	return &session{chat: chat}, nil
}

type session struct {
	chat *genai.Chat
}

func (s *session) Send(ctx context.Context, text string) (*contractx.ModelReply, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return nil, fmt.Errorf("%w: send message: %v", contractx.ErrModelInvoke, err)
	}
	return toReply(resp), nil
}

// SendToolResult serializes the tool's output and sends it into the same
// chat as a plain text turn, so the model can phrase a grounded answer.
func (s *session) SendToolResult(ctx context.Context, call contractx.ToolCall, payload any) (*contractx.ModelReply, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal tool result for %s: %v", contractx.ErrModelInvoke, call.Name, err)
	}

	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: string(encoded)})
	if err != nil {
		return nil, fmt.Errorf("%w: send tool result: %v", contractx.ErrModelInvoke, err)
	}
	return toReply(resp), nil
}

func toReply(resp *genai.GenerateContentResponse) *contractx.ModelReply {
	reply := &contractx.ModelReply{Text: resp.Text()}
	for _, call := range resp.FunctionCalls() {
		if call == nil {
			continue
		}
		reply.Calls = append(reply.Calls, contractx.ToolCall{
			Name: call.Name,
			Args: call.Args,
		})
	}
	return reply
}

func toContents(history []contractx.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := genai.Role(genai.RoleUser)
		if msg.Role == contractx.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Text, role))
	}
	return contents
}

func toDeclarations(decls []contractx.ToolDecl) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(decls))
	for _, d := range decls {
		properties := make(map[string]*genai.Schema, len(d.Params))
		for name, p := range d.Params {
			properties[name] = &genai.Schema{
				Type:        toSchemaType(p.Type),
				Description: p.Description,
			}
		}
		out = append(out, &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   d.Required,
			},
		})
	}
	return out
}

func toSchemaType(t string) genai.Type {
	switch t {
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
