// Package openrouter adapts any OpenAI-compatible provider to the
// assistant's ChatModel contract. Unlike the Gemini backend there is no
// server-side chat object; the session accumulates messages locally.
package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	contractx "github.com/thewalkingjumbo/agency-ops/assistant/contract"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`
}

type Model struct {
	client openaisdk.Client
	cfg    Config
	system string
	tools  []openaisdk.ChatCompletionToolParam
}

var _ contractx.ChatModel = (*Model)(nil)

func NewModel(cfg Config, system string, decls []contractx.ToolDecl) (*Model, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("%w: openrouter model is required", contractx.ErrValidation)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}
	if trimmed := strings.TrimRight(cfg.BaseURL, "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	// OpenRouter attribution headers.
	if cfg.SiteURL != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.SiteURL))
	}
	if cfg.SiteName != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.SiteName))
	}

	return &Model{
		client: openaisdk.NewClient(opts...),
		cfg:    cfg,
		system: strings.TrimSpace(system),
		tools:  toTools(decls),
	}, nil
}

func (m *Model) StartChat(_ context.Context, history []contractx.Message) (contractx.ChatSession, error) {
	messages := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(history)+2)
	if m.system != "" {
		messages = append(messages, openaisdk.SystemMessage(m.system))
	}
	for _, msg := range history {
		if msg.Role == contractx.RoleModel {
			messages = append(messages, openaisdk.AssistantMessage(msg.Text))
		} else {
			messages = append(messages, openaisdk.UserMessage(msg.Text))
		}
	}

	return &session{model: m, messages: messages, callIDs: map[string]string{}}, nil
}

type session struct {
	model    *Model
	messages []openaisdk.ChatCompletionMessageParamUnion
	// callIDs maps tool name to the id of the pending tool call, needed to
	// attach the result message.
	callIDs map[string]string
}

func (s *session) Send(ctx context.Context, text string) (*contractx.ModelReply, error) {
	s.messages = append(s.messages, openaisdk.UserMessage(text))
	return s.complete(ctx)
}

func (s *session) SendToolResult(ctx context.Context, call contractx.ToolCall, payload any) (*contractx.ModelReply, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal tool result for %s: %v", contractx.ErrModelInvoke, call.Name, err)
	}

	s.messages = append(s.messages, openaisdk.ToolMessage(string(encoded), s.callIDs[call.Name]))
	return s.complete(ctx)
}

func (s *session) complete(ctx context.Context) (*contractx.ModelReply, error) {
	params := openaisdk.ChatCompletionNewParams{
		Model:       openaisdk.ChatModel(s.model.cfg.Model),
		Messages:    s.messages,
		Temperature: openaisdk.Float(float64(s.model.cfg.Temperature)),
	}
	if s.model.cfg.MaxCompletionToken > 0 {
		params.MaxCompletionTokens = openaisdk.Int(int64(s.model.cfg.MaxCompletionToken))
	}
	if len(s.model.tools) > 0 {
		params.Tools = s.model.tools
	}

	completion, err := s.model.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: chat completion: %v", contractx.ErrModelInvoke, err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: completion returned no choices", contractx.ErrModelInvoke)
	}

	message := completion.Choices[0].Message
	s.messages = append(s.messages, message.ToParam())

	reply := &contractx.ModelReply{Text: message.Content}
	for _, tc := range message.ToolCalls {
		args := map[string]any{}
		// Malformed arguments degrade to an empty arg set.
		_ = json.Unmarshal([]byte(tc.Function.Arguments), &args)
		s.callIDs[tc.Function.Name] = tc.ID
		reply.Calls = append(reply.Calls, contractx.ToolCall{
			Name: tc.Function.Name,
			Args: args,
		})
	}
	return reply, nil
}

func toTools(decls []contractx.ToolDecl) []openaisdk.ChatCompletionToolParam {
	tools := make([]openaisdk.ChatCompletionToolParam, 0, len(decls))
	for _, d := range decls {
		properties := make(map[string]any, len(d.Params))
		for name, p := range d.Params {
			properties[name] = map[string]any{
				"type":        p.Type,
				"description": p.Description,
			}
		}
		required := d.Required
		if required == nil {
			required = []string{}
		}
		tools = append(tools, openaisdk.ChatCompletionToolParam{
			Function: openaisdk.FunctionDefinitionParam{
				Name:        d.Name,
				Description: openaisdk.String(d.Description),
				Parameters: openaisdk.FunctionParameters{
					"type":       "object",
					"properties": properties,
					"required":   required,
				},
			},
		})
	}
	return tools
}
