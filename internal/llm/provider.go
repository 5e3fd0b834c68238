package llm

import (
	"context"
	"errors"
)

// Message is one turn handed to the model runtime.
type Message struct {
	Role    string // "system", "user" or "assistant"
	Content string
}

// Sentinel failures. The assistant maps all of them to deterministic
// fallback answers instead of surfacing a 5xx for the turn.
var (
	ErrTimeout     = errors.New("llm: request timed out")
	ErrUnavailable = errors.New("llm: runtime unavailable")
	ErrEmpty       = errors.New("llm: empty completion")
)

// Provider abstracts the model runtime behind one blocking call.
type Provider interface {
	Generate(ctx context.Context, msgs []Message) (string, error)
	Close() error
}
