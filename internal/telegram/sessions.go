package telegram

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"menu-fit/internal/app"
	"menu-fit/internal/catalog"
	"menu-fit/internal/metrics"
)

// Session is one chat's conversation with the bot. Each chat drives its own
// controller; callers hold mu while touching it.
type Session struct {
	mu sync.Mutex

	ID         string
	ChatID     int64
	Controller *app.Controller
	Recorder   *metrics.Recorder

	// ViewMode makes planner buttons open recipes instead of toggling them.
	ViewMode bool

	lastSeen time.Time
}

// SessionStore keeps sessions in memory and expires idle ones.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	ttl      time.Duration
	now      func() time.Time

	// OnCreate, when set, runs for every new session before it is returned.
	OnCreate func(s *Session)
}

// NewSessionStore returns a store that forgets chats idle for longer than ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the chat's session, starting a fresh one when none is active.
func (s *SessionStore) Get(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if sess, ok := s.sessions[chatID]; ok && now.Sub(sess.lastSeen) <= s.ttl {
		sess.lastSeen = now
		return sess
	}
	return s.create(chatID, now)
}

// Reset discards the chat's session and starts over on the landing screen.
func (s *SessionStore) Reset(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(chatID, s.now())
}

func (s *SessionStore) create(chatID int64, now time.Time) *Session {
	sess := &Session{
		ID:         uuid.NewString(),
		ChatID:     chatID,
		Controller: app.NewController(catalog.Week()),
		lastSeen:   now,
	}
	if s.OnCreate != nil {
		s.OnCreate(sess)
	}
	s.sessions[chatID] = sess
	return sess
}

// Len returns the number of stored sessions, expired ones included.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var n int
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
