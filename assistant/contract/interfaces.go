package contract

import "context"

// ChatModel starts tool-enabled chat sessions. The system instruction and
// tool declarations are fixed at construction; history is supplied per call.
type ChatModel interface {
	StartChat(ctx context.Context, history []Message) (ChatSession, error)
}

// ChatSession is one request/response exchange with the model. Send delivers
// the user's new utterance; SendToolResult feeds a tool's output back into
// the same session so the model can phrase a grounded answer.
type ChatSession interface {
	Send(ctx context.Context, text string) (*ModelReply, error)
	SendToolResult(ctx context.Context, call ToolCall, payload any) (*ModelReply, error)
}
