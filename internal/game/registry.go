package game

import (
	"errors"
	"sync"
)

// ErrAlreadyActive means the player already owns a live session
var ErrAlreadyActive = errors.New("player already has an active game")

// Registry maps each player to at most one active session. The
// check-and-create is atomic so a double-submitted start cannot produce
// two sessions for the same player.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty session registry
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Create builds and registers a session for the player. Returns
// ErrAlreadyActive if the player already owns one; the builder is not
// invoked in that case.
func (r *Registry) Create(playerID string, build func() (*Session, error)) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[playerID]; exists {
		return nil, ErrAlreadyActive
	}

	session, err := build()
	if err != nil {
		return nil, err
	}

	r.sessions[playerID] = session
	return session, nil
}

// Get returns the player's active session, if any
func (r *Registry) Get(playerID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[playerID]
	return session, ok
}

// Remove drops the player's session from the registry
func (r *Registry) Remove(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, playerID)
}

// Len returns the number of active sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
