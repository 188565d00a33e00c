// Package memory implements the default in-process session store. Sessions
// live entirely in memory and are discarded on reset, persona change, or
// process exit.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/freeeve/principled-summit/pkg/negotiation"
)

// SessionStore keeps sessions keyed by user ID. Sessions are stored as
// serialized JSON so the round-trip semantics match the Redis store
// exactly; callers never share pointers with the store.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string][]byte)}
}

// Save stores a snapshot of the session.
func (st *SessionStore) Save(_ context.Context, userID string, s *negotiation.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[userID] = raw
	return nil
}

// Find returns the user's session, or (nil, nil) when absent.
func (st *SessionStore) Find(_ context.Context, userID string) (*negotiation.Session, error) {
	st.mu.RLock()
	raw, ok := st.sessions[userID]
	st.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var s negotiation.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

// Delete discards the user's session.
func (st *SessionStore) Delete(_ context.Context, userID string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, userID)
	return nil
}
