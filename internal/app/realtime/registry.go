package realtime

import (
	"sort"
	"sync"
)

// Registry is the in-memory map from user ID to the client currently
// connected for that user. It is the single source of truth for "who is
// online". State is process-wide and rebuilt from scratch on restart.
//
// The server runs handlers on many goroutines, so every access takes the
// lock; mutations from one connection stay ordered because each connection
// touches the registry from a single goroutine.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Client
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Client)}
}

// Register maps userID to client, overwriting any previous mapping.
// Last connect wins: a user opening a second tab replaces the first.
func (r *Registry) Register(userID string, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[userID] = client
}

// Unregister removes the mapping for userID, but only when client is the
// one currently on record. A stale connection closing after its user
// reconnected elsewhere must not knock the newer connection offline.
// It reports whether the entry was removed.
func (r *Registry) Unregister(userID string, client *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.entries[userID]; ok && current == client {
		delete(r.entries, userID)
		return true
	}

	return false
}

// Lookup returns the client registered for userID. Absence means the user
// is offline, which is an expected outcome and not an error.
func (r *Registry) Lookup(userID string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.entries[userID]
	return client, ok
}

// ListOnline returns a sorted snapshot of the user IDs currently online.
func (r *Registry) ListOnline() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	online := make([]string, 0, len(r.entries))
	for userID := range r.entries {
		online = append(online, userID)
	}

	sort.Strings(online)
	return online
}
