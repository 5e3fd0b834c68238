package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tripwise-backend/internal/conversation"
	"tripwise-backend/internal/models"
)

// DefaultID is used when a request carries no session identifier, so
// single-user clients keep working without managing sessions.
const DefaultID = "default"

const (
	maxHistory    = 10
	recentHistory = 5
)

// Session holds one conversation: its message history and the entities
// carried across turns.
type Session struct {
	ID        string
	mu        sync.Mutex
	history   []models.ChatMessage
	entities  conversation.Entities
	lastQuery conversation.QueryType
	updatedAt time.Time
}

// Record appends a user/assistant exchange, trimming history to the cap.
func (s *Session) Record(userText, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history,
		models.ChatMessage{Role: "user", Content: userText},
		models.ChatMessage{Role: "assistant", Content: answer},
	)
	if len(s.history) > maxHistory {
		s.history = s.history[len(s.history)-maxHistory:]
	}
	s.updatedAt = time.Now()
}

// History returns a copy of the stored messages.
func (s *Session) History() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// RecentHistory renders the last few exchanges as "role: content" lines
// for prompt building.
func (s *Session) RecentHistory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.history
	if len(msgs) > recentHistory {
		msgs = msgs[len(msgs)-recentHistory:]
	}
	var sb strings.Builder
	for _, m := range msgs {
		fmt.Fprintf(&sb, "%s: %s\n", m.Role, m.Content)
	}
	return strings.TrimSpace(sb.String())
}

// Entities returns the entities accumulated so far.
func (s *Session) Entities() conversation.Entities {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entities
}

// SetEntities stores the merged entities after a turn.
func (s *Session) SetEntities(e conversation.Entities) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities = e
	s.updatedAt = time.Now()
}

// LastQuery returns the query type of the previous turn.
func (s *Session) LastQuery() conversation.QueryType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery
}

// SetLastQuery records the query type handled this turn.
func (s *Session) SetLastQuery(q conversation.QueryType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastQuery = q
}

// Summary renders the whole conversation as "role: content" lines, or ""
// for a fresh session.
func (s *Session) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sb strings.Builder
	for _, m := range s.history {
		fmt.Fprintf(&sb, "%s: %s\n", m.Role, m.Content)
	}
	return strings.TrimSpace(sb.String())
}

// Manager owns all live sessions, keyed by client-supplied identifier.
// Sessions are memory-only and expire after a period of inactivity.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Get returns the session for id, creating it if needed. An empty id
// maps to the default session.
func (m *Manager) Get(id string) *Session {
	if id == "" {
		id = DefaultID
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s = &Session{ID: id, updatedAt: time.Now()}
	m.sessions[id] = s
	return s
}

// NewID mints a fresh session identifier for clients that want one.
func (m *Manager) NewID() string {
	return uuid.New().String()
}

// Reset clears the session's history and entities, keeping the id valid
// for future requests.
func (m *Manager) Reset(id string) {
	if id == "" {
		id = DefaultID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &Session{ID: id, updatedAt: time.Now()}
}

// Len reports how many sessions are live.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartJanitor evicts idle sessions in the background until stop is closed.
func (m *Manager) StartJanitor(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				m.evictExpired()
			}
		}
	}()
}

func (m *Manager) evictExpired() {
	cutoff := time.Now().Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.updatedAt.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
		}
	}
}
