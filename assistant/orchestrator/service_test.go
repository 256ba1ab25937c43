package orchestrator

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/thewalkingjumbo/agency-ops/assistant/contract"
	toolx "github.com/thewalkingjumbo/agency-ops/assistant/tool"
	"github.com/thewalkingjumbo/agency-ops/store"
)

type fakeSession struct {
	reply       *contractx.ModelReply
	sendErr     error
	second      *contractx.ModelReply
	secondErr   error
	sentText    []string
	toolResults []any
	toolCalls   []contractx.ToolCall
}

func (f *fakeSession) Send(ctx context.Context, text string) (*contractx.ModelReply, error) {
	f.sentText = append(f.sentText, text)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return f.reply, nil
}

func (f *fakeSession) SendToolResult(ctx context.Context, call contractx.ToolCall, payload any) (*contractx.ModelReply, error) {
	f.toolCalls = append(f.toolCalls, call)
	f.toolResults = append(f.toolResults, payload)
	if f.secondErr != nil {
		return nil, f.secondErr
	}
	return f.second, nil
}

type fakeModel struct {
	session  *fakeSession
	startErr error
	history  []contractx.Message
}

func (f *fakeModel) StartChat(ctx context.Context, history []contractx.Message) (contractx.ChatSession, error) {
	f.history = append([]contractx.Message(nil), history...)
	if f.startErr != nil {
		return nil, f.startErr
	}
	return f.session, nil
}

type fakeDirectory struct {
	leads     []*store.Lead
	listErr   error
	lead      *store.Lead
	findErr   error
	listCalls []string
	findCalls []string
}

func (f *fakeDirectory) ListByCountry(ctx context.Context, country string) ([]*store.Lead, error) {
	f.listCalls = append(f.listCalls, country)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.leads, nil
}

func (f *fakeDirectory) FindByName(ctx context.Context, name string) (*store.Lead, error) {
	f.findCalls = append(f.findCalls, name)
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.lead, nil
}

func userTurn(text string) []contractx.Message {
	return []contractx.Message{{Role: contractx.RoleUser, Text: text}}
}

func newTestOrchestrator(t *testing.T, model contractx.ChatModel, dir toolx.LeadDirectory) *Orchestrator {
	t.Helper()
	o, err := New(model, toolx.NewCatalog(dir))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return o
}

func TestAskValidation(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(t, &fakeModel{session: &fakeSession{}}, &fakeDirectory{})

	_, err := o.Ask(context.Background(), nil)
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty history, got %v", err)
	}

	_, err = o.Ask(context.Background(), []contractx.Message{{Role: contractx.RoleModel, Text: "hi"}})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation for trailing model turn, got %v", err)
	}

	_, err = o.Ask(context.Background(), userTurn("   "))
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank text, got %v", err)
	}
}

func TestAskNoToolPath(t *testing.T) {
	t.Parallel()

	model := &fakeModel{session: &fakeSession{
		reply: &contractx.ModelReply{Text: "Hello! How can I help?"},
	}}
	o := newTestOrchestrator(t, model, &fakeDirectory{})

	history := []contractx.Message{
		{Role: contractx.RoleUser, Text: "hi"},
		{Role: contractx.RoleModel, Text: "hello"},
		{Role: contractx.RoleUser, Text: "what can you do?"},
	}
	result, err := o.Ask(context.Background(), history)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.Text != "Hello! How can I help?" {
		t.Fatalf("unexpected text: %q", result.Text)
	}
	if result.ToolData != nil {
		t.Fatalf("expected no tool data, got %+v", result.ToolData)
	}
	if len(model.history) != 2 {
		t.Fatalf("expected prior turns only in session history, got %d", len(model.history))
	}
	if got := model.session.sentText; len(got) != 1 || got[0] != "what can you do?" {
		t.Fatalf("unexpected sent text: %v", got)
	}
}

func TestAskGetLeadsAll(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{leads: []*store.Lead{
		{ID: 1, Name: "Acme", Country: "UK"},
		{ID: 2, Name: "Globex", Country: "uk"},
	}}
	session := &fakeSession{
		reply: &contractx.ModelReply{Calls: []contractx.ToolCall{{Name: toolx.ToolGetLeads, Args: map[string]any{}}}},
	}
	o := newTestOrchestrator(t, &fakeModel{session: session}, dir)

	result, err := o.Ask(context.Background(), userTurn("show me my leads"))
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.Text != "Certainly! Here are all of your current leads:" {
		t.Fatalf("unexpected text: %q", result.Text)
	}
	if result.ToolData == nil || result.ToolData.Name != toolx.ToolGetLeads {
		t.Fatalf("expected getLeads tool data, got %+v", result.ToolData)
	}
	leads, ok := result.ToolData.Data.([]*store.Lead)
	if !ok || len(leads) != 2 {
		t.Fatalf("unexpected tool data payload: %+v", result.ToolData.Data)
	}
	if len(dir.listCalls) != 1 || dir.listCalls[0] != "" {
		t.Fatalf("expected one unfiltered list call, got %v", dir.listCalls)
	}
	if len(session.toolResults) != 0 {
		t.Fatalf("getLeads must not round-trip, got %d tool results", len(session.toolResults))
	}
}

func TestAskGetLeadsFiltered(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{leads: []*store.Lead{{ID: 1, Name: "Acme", Country: "UK"}}}
	session := &fakeSession{
		reply: &contractx.ModelReply{Calls: []contractx.ToolCall{
			{Name: toolx.ToolGetLeads, Args: map[string]any{"location": "UK"}},
		}},
	}
	o := newTestOrchestrator(t, &fakeModel{session: session}, dir)

	result, err := o.Ask(context.Background(), userTurn("leads in the UK?"))
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.Text != "Here are your leads from UK:" {
		t.Fatalf("unexpected text: %q", result.Text)
	}
	if len(dir.listCalls) != 1 || dir.listCalls[0] != "UK" {
		t.Fatalf("expected list call with UK, got %v", dir.listCalls)
	}
}

func TestAskGetLeadDetailsFound(t *testing.T) {
	t.Parallel()

	lead := &store.Lead{ID: 5, Name: "Jane Smith", DealValue: 1000, Currency: "USD"}
	dir := &fakeDirectory{lead: lead}
	session := &fakeSession{
		reply: &contractx.ModelReply{Calls: []contractx.ToolCall{
			{Name: toolx.ToolGetLeadDetails, Args: map[string]any{"leadName": "Jane Smith"}},
		}},
		second: &contractx.ModelReply{Text: "Jane Smith is a $1000 USD lead."},
	}
	o := newTestOrchestrator(t, &fakeModel{session: session}, dir)

	result, err := o.Ask(context.Background(), userTurn("tell me about Jane Smith"))
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.Text != "Jane Smith is a $1000 USD lead." {
		t.Fatalf("unexpected text: %q", result.Text)
	}
	if result.ToolData == nil || result.ToolData.Name != toolx.ToolGetLeadDetails {
		t.Fatalf("expected getLeadDetails tool data, got %+v", result.ToolData)
	}
	if result.ToolData.Data != lead {
		t.Fatalf("expected the found lead as tool data, got %+v", result.ToolData.Data)
	}
	if len(session.toolResults) != 1 || session.toolResults[0] != any(lead) {
		t.Fatalf("expected the lead round-tripped once, got %v", session.toolResults)
	}
}

func TestAskGetLeadDetailsNotFound(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{findErr: store.ErrNotFound}
	session := &fakeSession{
		reply: &contractx.ModelReply{Calls: []contractx.ToolCall{
			{Name: toolx.ToolGetLeadDetails, Args: map[string]any{"leadName": "Nobody"}},
		}},
		second: &contractx.ModelReply{Text: "I couldn't find a lead named Nobody."},
	}
	o := newTestOrchestrator(t, &fakeModel{session: session}, dir)

	result, err := o.Ask(context.Background(), userTurn("who is Nobody?"))
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.Text != "I couldn't find a lead named Nobody." {
		t.Fatalf("unexpected text: %q", result.Text)
	}
	if result.ToolData == nil || result.ToolData.Data != nil {
		t.Fatalf("expected tagged nil data for not-found, got %+v", result.ToolData)
	}
	if len(session.toolResults) != 1 {
		t.Fatalf("expected not-found payload round-tripped, got %d", len(session.toolResults))
	}
	payload, ok := session.toolResults[0].(map[string]string)
	if !ok || payload["error"] != "Lead named 'Nobody' not found." {
		t.Fatalf("unexpected round-trip payload: %+v", session.toolResults[0])
	}
}

func TestAskGetLeadDetailsMissingName(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{}
	session := &fakeSession{
		reply: &contractx.ModelReply{Calls: []contractx.ToolCall{
			{Name: toolx.ToolGetLeadDetails, Args: map[string]any{}},
		}},
	}
	o := newTestOrchestrator(t, &fakeModel{session: session}, dir)

	result, err := o.Ask(context.Background(), userTurn("lead details please"))
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.Text != "You need to provide a name to get lead details." {
		t.Fatalf("unexpected text: %q", result.Text)
	}
	if result.ToolData != nil {
		t.Fatalf("expected no tool data, got %+v", result.ToolData)
	}
	if len(dir.findCalls) != 0 {
		t.Fatalf("lookup must not run without a name, got %v", dir.findCalls)
	}
	if len(session.toolResults) != 0 {
		t.Fatalf("expected no round trip, got %d", len(session.toolResults))
	}
}

func TestAskModelFailureApologizes(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(t, &fakeModel{startErr: errors.New("quota exceeded")}, &fakeDirectory{})

	result, err := o.Ask(context.Background(), userTurn("hello"))
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.Text != apologyReply {
		t.Fatalf("unexpected text: %q", result.Text)
	}
	if result.ToolData != nil {
		t.Fatalf("expected no tool data, got %+v", result.ToolData)
	}

	o = newTestOrchestrator(t, &fakeModel{session: &fakeSession{sendErr: errors.New("boom")}}, &fakeDirectory{})
	result, err = o.Ask(context.Background(), userTurn("hello"))
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.Text != apologyReply {
		t.Fatalf("unexpected text: %q", result.Text)
	}
}

func TestAskToolFailureApologizes(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{listErr: errors.New("db down")}
	session := &fakeSession{
		reply: &contractx.ModelReply{Calls: []contractx.ToolCall{{Name: toolx.ToolGetLeads}}},
	}
	o := newTestOrchestrator(t, &fakeModel{session: session}, dir)

	result, err := o.Ask(context.Background(), userTurn("show leads"))
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.Text != apologyReply {
		t.Fatalf("unexpected text: %q", result.Text)
	}
}

func TestAskUnknownToolFallsBackToText(t *testing.T) {
	t.Parallel()

	session := &fakeSession{
		reply: &contractx.ModelReply{
			Text:  "Let me check that.",
			Calls: []contractx.ToolCall{{Name: "dropAllTables"}},
		},
	}
	o := newTestOrchestrator(t, &fakeModel{session: session}, &fakeDirectory{})

	result, err := o.Ask(context.Background(), userTurn("do something odd"))
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.Text != "Let me check that." {
		t.Fatalf("unexpected text: %q", result.Text)
	}
	if result.ToolData != nil {
		t.Fatalf("expected no tool data, got %+v", result.ToolData)
	}
}
