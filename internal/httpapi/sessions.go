package httpapi

import (
	"sync"
	"time"

	"study-quiz/internal/quiz"
)

const sessionTTL = 24 * time.Hour

// sessionEntry guards one in-progress attempt. Handlers hold mu for the
// whole read-modify-write so a session only ever has one writer.
type sessionEntry struct {
	mu        sync.Mutex
	id        string
	owner     string
	session   *quiz.Session
	startedAt time.Time
}

type sessionRegistry struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
	now     func() time.Time
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		entries: make(map[string]*sessionEntry),
		now:     time.Now,
	}
}

func (r *sessionRegistry) add(session *quiz.Session) *sessionEntry {
	entry := &sessionEntry{
		id:        quiz.NewID(),
		owner:     session.Owner(),
		session:   session,
		startedAt: r.now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	r.entries[entry.id] = entry
	return entry
}

// get returns the entry only to its owner; other callers see not found.
func (r *sessionRegistry) get(owner, id string) (*sessionEntry, error) {
	r.mu.RLock()
	entry, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok || entry.owner != owner {
		return nil, quiz.ErrSessionNotFound
	}
	return entry, nil
}

func (r *sessionRegistry) remove(id string) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

func (r *sessionRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// pruneLocked drops attempts abandoned without an explicit DELETE.
func (r *sessionRegistry) pruneLocked() {
	cutoff := r.now().Add(-sessionTTL)
	for id, entry := range r.entries {
		if entry.startedAt.Before(cutoff) {
			delete(r.entries, id)
		}
	}
}
