// Package session holds the state shared by consecutive runs in one editor session.
package session

import (
	"errors"
	"sync"

	"erlt/internal/domain"
)

// ErrBusy is returned by Begin while another run is in flight
var ErrBusy = errors.New("a test run is already in progress")

// Entry is a successfully resolved target together with the root it runs in
type Entry struct {
	Project domain.ProjectContext
	Target  domain.TestTarget
}

// Session remembers the last resolved target so it can be repeated without re-resolving the cursor.
// It lives as long as its owner; nothing is written to disk.
type Session struct {
	mu   sync.Mutex
	last *Entry

	inFlight sync.Mutex
}

// New creates an empty Session
func New() *Session {
	return &Session{}
}

// Begin claims the session for one run. The returned release must be called when the run ends.
func (s *Session) Begin() (release func(), err error) {
	if !s.inFlight.TryLock() {
		return nil, ErrBusy
	}
	var once sync.Once
	return func() { once.Do(s.inFlight.Unlock) }, nil
}

// Store records a freshly resolved target, replacing the previous one
func (s *Session) Store(project domain.ProjectContext, target domain.TestTarget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &Entry{Project: project, Target: target}
}

// Last returns the most recently stored target
func (s *Session) Last() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Entry{}, false
	}
	return *s.last, true
}

// Clear forgets the stored target
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = nil
}
