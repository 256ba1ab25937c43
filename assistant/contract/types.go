package contract

// Role of a conversation message. The wire contract uses "model" for
// assistant turns, matching the UI's chat log.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn of the caller-owned conversation history. The caller
// replays the full history on every call; the service keeps no session state.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// AskResult is the orchestrator's unified output: a natural-language reply
// and, when a tool ran, its raw result tagged for the UI renderer.
type AskResult struct {
	Text     string    `json:"text"`
	ToolData *ToolData `json:"toolData,omitempty"`
}

// ToolData carries a tool's structured result. Name doubles as the UI hint
// that picks the renderer. Data may be nil for a not-found lookup.
type ToolData struct {
	Name string `json:"name"`
	Data any    `json:"data"`
}

// ToolCall is a function-call intent extracted from a model reply.
type ToolCall struct {
	Name string
	Args map[string]any
}

// ModelReply is one model response: text plus any requested function calls.
type ModelReply struct {
	Text  string
	Calls []ToolCall
}

// ToolDecl declares a callable tool to the model.
type ToolDecl struct {
	Name        string
	Description string
	Params      map[string]ParamDecl
	Required    []string
}

type ParamDecl struct {
	Type        string
	Description string
}
