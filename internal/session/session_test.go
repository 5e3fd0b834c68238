package session

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"tripwise-backend/internal/conversation"
)

func TestManagerDefaultSession(t *testing.T) {
	m := NewManager(time.Hour)

	s1 := m.Get("")
	s2 := m.Get(DefaultID)
	if s1 != s2 {
		t.Error("Expected empty id to resolve to the default session")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	m := NewManager(time.Hour)

	a := m.Get("alpha")
	b := m.Get("beta")
	a.Record("I want to visit Paris", "Paris is lovely in spring.")

	if b.Summary() != "" {
		t.Errorf("Expected session beta untouched, got %q", b.Summary())
	}
	if !strings.Contains(a.Summary(), "Paris") {
		t.Errorf("Expected session alpha to hold the exchange, got %q", a.Summary())
	}
}

func TestReset(t *testing.T) {
	m := NewManager(time.Hour)

	s := m.Get("alpha")
	s.Record("Recommend a destination", "Try Lisbon.")
	s.SetEntities(conversation.Entities{Destination: "Lisbon"})

	m.Reset("alpha")

	fresh := m.Get("alpha")
	if fresh.Summary() != "" {
		t.Errorf("Expected empty summary after reset, got %q", fresh.Summary())
	}
	if fresh.Entities().Destination != "" {
		t.Error("Expected entities cleared after reset")
	}
}

func TestHistoryCap(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Get("alpha")

	for i := 0; i < 12; i++ {
		s.Record(fmt.Sprintf("question %d", i), fmt.Sprintf("answer %d", i))
	}

	if got := len(s.History()); got != maxHistory {
		t.Errorf("Expected history capped at %d messages, got %d", maxHistory, got)
	}
	if !strings.Contains(s.Summary(), "question 11") {
		t.Error("Expected most recent exchange retained")
	}
	if strings.Contains(s.Summary(), "question 0") {
		t.Error("Expected oldest exchange evicted")
	}
}

func TestRecentHistoryRendersRoles(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Get("alpha")
	s.Record("Where should I go?", "How about Kyoto?")

	recent := s.RecentHistory()
	if !strings.Contains(recent, "user: Where should I go?") {
		t.Errorf("Expected user line, got %q", recent)
	}
	if !strings.Contains(recent, "assistant: How about Kyoto?") {
		t.Errorf("Expected assistant line, got %q", recent)
	}
}

func TestEvictExpired(t *testing.T) {
	m := NewManager(50 * time.Millisecond)

	m.Get("stale")
	time.Sleep(80 * time.Millisecond)
	m.Get("fresh")
	m.evictExpired()

	if m.Len() != 1 {
		t.Errorf("Expected 1 live session after eviction, got %d", m.Len())
	}
}

func TestNewIDUnique(t *testing.T) {
	m := NewManager(time.Hour)
	if m.NewID() == m.NewID() {
		t.Error("Expected distinct generated session ids")
	}
}
