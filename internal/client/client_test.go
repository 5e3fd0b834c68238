package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tripwise-backend/internal/models"
)

func TestAsk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assistant/ask" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		var req models.AskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.SessionID != "cli-1" {
			t.Errorf("Expected pinned session id, got %q", req.SessionID)
		}
		json.NewEncoder(w).Encode(models.AskResponse{
			Answer:    "Lisbon fits.",
			Followup:  "How many days do you have?",
			SessionID: req.SessionID,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "cli-1", 5*time.Second)
	resp, err := c.Ask(context.Background(), "Where should I go?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if resp.Answer != "Lisbon fits." || resp.Followup == "" {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestAsk_ServerErrorIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "cli-1", 5*time.Second)
	_, err := c.Ask(context.Background(), "hi")
	if !errors.Is(err, ErrBackendUnreachable) {
		t.Errorf("Expected ErrBackendUnreachable, got %v", err)
	}
}

func TestAsk_TimeoutIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(srv.URL, "cli-1", 50*time.Millisecond)
	_, err := c.Ask(context.Background(), "hi")
	if !errors.Is(err, ErrBackendUnreachable) {
		t.Errorf("Expected ErrBackendUnreachable on timeout, got %v", err)
	}
}

func TestSummaryAndReset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/assistant/summary":
			if got := r.URL.Query().Get("session_id"); got != "cli-1" {
				t.Errorf("Expected session id in query, got %q", got)
			}
			json.NewEncoder(w).Encode(models.SummaryResponse{
				Summary:   map[string]any{"recent_history": "user: hi"},
				SessionID: "cli-1",
			})
		case "/assistant/reset":
			json.NewEncoder(w).Encode(models.ResetResponse{Status: "reset", SessionID: "cli-1"})
		default:
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "cli-1", 5*time.Second)

	summary, err := c.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.Summary["recent_history"] != "user: hi" {
		t.Errorf("Unexpected summary: %+v", summary)
	}

	if err := c.Reset(context.Background()); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
}
