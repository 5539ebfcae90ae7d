// Package llm wraps the chat-completion provider behind a small interface so
// services depend on messages in, text out rather than on a vendor SDK.
package llm

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

// Params are the per-request generation knobs. Zero values fall back to the
// provider defaults.
type Params struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

type Client interface {
	Complete(ctx context.Context, messages []Message, params Params) (string, error)
}
