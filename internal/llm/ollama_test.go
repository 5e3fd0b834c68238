package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestOllamaGenerate_Success(t *testing.T) {
	var gotReq ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "  Visit Lisbon in May.  "})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "gemma:2b", 200, 5*time.Second)
	text, err := c.Generate(context.Background(), []Message{
		{Role: "system", Content: "You are a travel expert."},
		{Role: "user", Content: "Where should I go in spring?"},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if text != "Visit Lisbon in May." {
		t.Errorf("Expected trimmed answer, got %q", text)
	}
	if gotReq.Model != "gemma:2b" {
		t.Errorf("Expected model 'gemma:2b', got %q", gotReq.Model)
	}
	if gotReq.Stream {
		t.Error("Expected stream=false")
	}
	if gotReq.Options.NumPredict != 200 {
		t.Errorf("Expected num_predict 200, got %d", gotReq.Options.NumPredict)
	}
	if !strings.Contains(gotReq.Prompt, "user: Where should I go in spring?") {
		t.Errorf("Expected flattened prompt, got %q", gotReq.Prompt)
	}
}

func TestOllamaGenerate_EmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": "   "})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "gemma:2b", 200, 5*time.Second)
	_, err := c.Generate(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("Expected ErrEmpty, got %v", err)
	}
}

func TestOllamaGenerate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "gemma:2b", 200, 5*time.Second)
	_, err := c.Generate(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
}

func TestOllamaGenerate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]string{"response": "late"})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "gemma:2b", 200, 50*time.Millisecond)
	_, err := c.Generate(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("Expected ErrTimeout, got %v", err)
	}
}
