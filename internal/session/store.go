// Package session provides an in-memory conversation session store
// with TTL eviction. Sessions hold per-user analysis context and are
// never persisted.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "smc-analyst/internal/errors"
	"smc-analyst/internal/models"
)

// Session carries the mutable context of one conversation.
type Session struct {
	ID         string            `json:"id"`
	Bias       models.Bias       `json:"bias,omitempty"`
	Symbol     string            `json:"symbol,omitempty"`
	AssetClass models.AssetClass `json:"asset_class,omitempty"`
	Balance    float64           `json:"balance,omitempty"`
	RiskPct    float64           `json:"risk_percent,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Store holds sessions keyed by id. Entries idle longer than the TTL
// are evicted by a background janitor.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	log      zerolog.Logger
	stop     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewStore creates a store and starts its eviction janitor. Close must
// be called to stop it.
func NewStore(ttl, sweepEvery time.Duration, log zerolog.Logger) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		log:      log.With().Str("component", "session").Logger(),
		stop:     make(chan struct{}),
		now:      time.Now,
	}
	go s.janitor(sweepEvery)
	return s
}

// Create allocates a new session with a fresh id.
func (s *Store) Create() *Session {
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.log.Debug().Str("session", sess.ID).Msg("session created")
	return sess
}

// Get returns a copy of the session, refreshing its idle timer.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	sess.UpdatedAt = s.now()
	copied := *sess
	return &copied, nil
}

// Update applies fn to the session under the store lock.
func (s *Store) Update(id string, fn func(*Session)) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	fn(sess)
	sess.UpdatedAt = s.now()
	copied := *sess
	return &copied, nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the eviction janitor.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.evictExpired()
		}
	}
}

func (s *Store) evictExpired() {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var evicted int
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	s.mu.Unlock()

	if evicted > 0 {
		s.log.Info().Int("evicted", evicted).Msg("expired sessions removed")
	}
}
