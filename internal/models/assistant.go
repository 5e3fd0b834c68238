package models

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// AskRequest is the payload sent to POST /assistant/ask.
type AskRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id,omitempty"`
}

// AskResponse is the assistant's reply for one turn. Answer is always
// non-empty; Followup is a best-effort next question and may be absent.
type AskResponse struct {
	Answer    string         `json:"answer"`
	Followup  string         `json:"followup,omitempty"`
	Context   map[string]any `json:"context"`
	SessionID string         `json:"session_id"`
}

// SummaryResponse is returned by GET /assistant/summary.
type SummaryResponse struct {
	Summary   map[string]any `json:"summary"`
	SessionID string         `json:"session_id"`
}

// ResetResponse is returned by POST /assistant/reset.
type ResetResponse struct {
	Status    string `json:"status"`
	SessionID string `json:"session_id"`
}
