package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"tripwise-backend/internal/llm"
	"tripwise-backend/internal/session"
	"tripwise-backend/internal/services"
)

type fakeProvider struct {
	reply string
	err   error
	calls int
}

func (f *fakeProvider) Generate(ctx context.Context, msgs []llm.Message) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeProvider) Close() error { return nil }

// newTestService wires a service whose external lookups all point at an
// unroutable address, so answers come from the model or the fallbacks.
func newTestService(p llm.Provider) (*Service, *session.Manager) {
	dead := "http://127.0.0.1:0"
	sessions := session.NewManager(time.Hour)
	geo := services.NewGeocodeService(dead, dead, nil)
	weather := services.NewWeatherService(dead, nil)
	country := services.NewCountryService(dead, geo, nil)
	places := services.NewPlacesService(dead, nil)
	return New(p, sessions, geo, weather, country, places, 2, time.Second), sessions
}

func TestAsk_AlwaysAnswers(t *testing.T) {
	svc, _ := newTestService(&fakeProvider{reply: "Lisbon is a great pick."})

	resp := svc.Ask(context.Background(), "", "Where should I go for a beach holiday?")
	if resp.Answer == "" {
		t.Fatal("Expected a non-empty answer")
	}
	if resp.SessionID != session.DefaultID {
		t.Errorf("Expected default session id, got %q", resp.SessionID)
	}
}

func TestAsk_FallbackOnModelFailure(t *testing.T) {
	svc, _ := newTestService(&fakeProvider{err: llm.ErrTimeout})

	resp := svc.Ask(context.Background(), "s1", "Recommend a destination for hiking")
	if resp.Answer == "" {
		t.Fatal("Expected a fallback answer when the model times out")
	}
	if !strings.Contains(resp.Answer, "Slovenia") {
		t.Errorf("Expected hiking-flavored fallback ideas, got %q", resp.Answer)
	}
}

func TestAsk_ClarifiesMissingDestination(t *testing.T) {
	p := &fakeProvider{reply: "should not be called"}
	svc, _ := newTestService(p)

	resp := svc.Ask(context.Background(), "s1", "What should I pack?")
	if !strings.Contains(resp.Answer, "Which destination") {
		t.Errorf("Expected a clarifying question, got %q", resp.Answer)
	}
	if p.calls != 0 {
		t.Errorf("Expected no model call for a clarification, got %d", p.calls)
	}
}

func TestAsk_ContextCarriesAcrossTurns(t *testing.T) {
	svc, _ := newTestService(&fakeProvider{reply: "Pack light layers."})

	svc.Ask(context.Background(), "s1", "I want to visit Paris for 5 days")
	resp := svc.Ask(context.Background(), "s1", "What should I pack?")

	if resp.Context["destination"] != "Paris" {
		t.Errorf("Expected destination carried from the prior turn, got %v", resp.Context)
	}
	if resp.Context["duration"] != "5 days" {
		t.Errorf("Expected duration carried from the prior turn, got %v", resp.Context)
	}
}

func TestAsk_SessionsAreIsolated(t *testing.T) {
	svc, _ := newTestService(&fakeProvider{reply: "Sure."})

	svc.Ask(context.Background(), "alice", "I want to visit Tokyo")
	resp := svc.Ask(context.Background(), "bob", "What should I pack?")

	if _, ok := resp.Context["destination"]; ok {
		t.Errorf("Expected bob's session to have no destination, got %v", resp.Context)
	}
	if !strings.Contains(resp.Answer, "Which destination") {
		t.Errorf("Expected clarification in the fresh session, got %q", resp.Answer)
	}
}

func TestAsk_BudgetIsDeterministic(t *testing.T) {
	p := &fakeProvider{reply: "model text"}
	svc, _ := newTestService(p)

	resp := svc.Ask(context.Background(), "s1", "How much does a trip to Portugal cost per day?")
	if !strings.Contains(resp.Answer, "Backpacker") || !strings.Contains(resp.Answer, "Luxury") {
		t.Errorf("Expected budget tiers, got %q", resp.Answer)
	}
	if p.calls != 0 {
		t.Errorf("Expected no model call for a budget estimate, got %d", p.calls)
	}
}

func TestAsk_VisaUsesPassportFromHistory(t *testing.T) {
	svc, _ := newTestService(&fakeProvider{reply: "noted"})

	svc.Ask(context.Background(), "s1", "I have a German passport")
	resp := svc.Ask(context.Background(), "s1", "Do I need a visa for Thailand?")

	if !strings.Contains(resp.Answer, "visa-exempt") {
		t.Errorf("Expected visa-exempt guidance for a German passport, got %q", resp.Answer)
	}
}

func TestAsk_BaliSurfSeasons(t *testing.T) {
	svc, _ := newTestService(&fakeProvider{reply: "noted"})

	resp := svc.Ask(context.Background(), "s1", "When is the best time to visit Bali for surfing?")
	if !strings.Contains(resp.Answer, "dry season") {
		t.Errorf("Expected curated surf season advice, got %q", resp.Answer)
	}
}

func TestSummaryAndReset(t *testing.T) {
	svc, _ := newTestService(&fakeProvider{reply: "Try Kyoto."})

	svc.Ask(context.Background(), "s1", "Recommend a destination in Japan")
	summary := svc.Summary("s1")
	history, _ := summary.Summary["recent_history"].(string)
	if !strings.Contains(history, "Recommend a destination in Japan") {
		t.Errorf("Expected the turn in the summary history, got %q", history)
	}
	ctxMap, _ := summary.Summary["context"].(map[string]any)
	if ctxMap["destination"] != "Japan" {
		t.Errorf("Expected destination in summary context, got %v", ctxMap)
	}

	reset := svc.Reset("s1")
	if reset.Status != "reset" {
		t.Errorf("Expected reset status, got %q", reset.Status)
	}
	after := svc.Summary("s1")
	if h, _ := after.Summary["recent_history"].(string); h != "" {
		t.Errorf("Expected empty history after reset, got %q", h)
	}
}

func TestFollowupFastPath(t *testing.T) {
	p := &fakeProvider{reply: "model"}
	svc, _ := newTestService(p)

	svc.Ask(context.Background(), "s1", "I want to visit Rome")
	calls := p.calls
	resp := svc.Ask(context.Background(), "s1", "What food should I try there?")

	if p.calls != calls {
		t.Errorf("Expected the food followup answered without a model call")
	}
	if !strings.Contains(resp.Answer, "Rome") {
		t.Errorf("Expected food advice anchored to Rome, got %q", resp.Answer)
	}
}
