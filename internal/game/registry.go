package game

import (
	"sync"

	"github.com/google/uuid"
)

// Registry is the in-memory store of live game sessions.
type Registry struct {
	mu    sync.RWMutex
	games map[uuid.UUID]*Session
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{games: make(map[uuid.UUID]*Session)}
}

// Create builds a new session from seed and registers it.
func (r *Registry) Create(seed uint64) *Session {
	s := NewSession(seed)
	r.mu.Lock()
	r.games[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get returns the session with the given id, or nil.
func (r *Registry) Get(id uuid.UUID) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.games[id]
}

// List returns the ids of every registered session.
func (r *Registry) List() []uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]uuid.UUID, 0, len(r.games))
	for id := range r.games {
		out = append(out, id)
	}
	return out
}

// Remove drops a session. Returns false if it was not registered.
func (r *Registry) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[id]; !ok {
		return false
	}
	delete(r.games, id)
	return true
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}
