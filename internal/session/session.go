// Package session owns per-visitor calculator state: the history ledger and
// the last successful calculation. State lives only in memory and is dropped
// when the session ends or sits idle past the store's TTL.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"smart-calculator/internal/history"
)

// Session is one visitor's state. Methods are safe for concurrent use because
// the HTTP server may run two requests of the same visitor at once.
type Session struct {
	ID string

	mu       sync.Mutex
	ledger   *history.Ledger
	last     *history.Record
	lastSeen time.Time
}

func newSession(historySize int, now time.Time) *Session {
	return &Session{
		ID:       uuid.New().String(),
		ledger:   history.NewLedger(historySize),
		lastSeen: now,
	}
}

// RecordCalculation appends rec to the ledger and makes it the last
// calculation.
func (s *Session) RecordCalculation(rec history.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.ledger.Record(rec.Expression, rec.Result)
	s.last = &stored
}

// History returns the ledger entries, newest first.
func (s *Session) History() []history.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.List()
}

// ClearHistory empties the ledger. The last calculation is kept.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.Clear()
}

// LastCalculation returns the most recent successful calculation, if any.
func (s *Session) LastCalculation() (history.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return history.Record{}, false
	}
	return *s.last, true
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return now.Sub(s.lastSeen)
}

// Store holds live sessions keyed by ID.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	ttl         time.Duration
	historySize int
	now         func() time.Time
}

// NewStore returns an empty store. Sessions idle for longer than ttl are
// discarded; a non-positive ttl keeps sessions until they are deleted.
func NewStore(ttl time.Duration, historySize int) *Store {
	return &Store{
		sessions:    make(map[string]*Session),
		ttl:         ttl,
		historySize: historySize,
		now:         time.Now,
	}
}

// Get returns the live session with the given id and marks it as used.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}

	now := s.now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return nil, false
	}

	sess.touch(now)
	return sess, true
}

// Create starts a new empty session, sweeping expired ones first.
func (s *Store) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	sess := newSession(s.historySize, now)
	s.sessions[sess.ID] = sess
	return sess
}

// Delete ends the session with the given id. Unknown ids are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sweepLocked(s.now())
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

func (s *Store) sweepLocked(now time.Time) int {
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && sess.idleSince(now) > s.ttl
}
