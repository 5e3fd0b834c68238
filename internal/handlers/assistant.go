package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"tripwise-backend/internal/assistant"
	"tripwise-backend/internal/models"
)

type AssistantHandler struct {
	assistant *assistant.Service
}

func NewAssistantHandler(svc *assistant.Service) *AssistantHandler {
	return &AssistantHandler{assistant: svc}
}

// POST /assistant/ask
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"text": "text is required"}, r))
		return
	}

	resp := h.assistant.Ask(r.Context(), sessionID(r, req.SessionID), req.Text)
	writeJSON(w, http.StatusOK, resp)
}

// GET /assistant/summary
func (h *AssistantHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.assistant.Summary(sessionID(r, r.URL.Query().Get("session_id"))))
}

// POST /assistant/reset
func (h *AssistantHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
	}
	// Body is optional; reset without one clears the default session.
	_ = json.NewDecoder(r.Body).Decode(&req)

	writeJSON(w, http.StatusOK, h.assistant.Reset(sessionID(r, req.SessionID)))
}

// sessionID resolves the session for a request: explicit value first, then
// the X-Session-ID header, then the shared default.
func sessionID(r *http.Request, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return r.Header.Get("X-Session-ID")
}
