package dragonball

import "sync"

// SessionStore holds the current session token.
type SessionStore interface {
	StoreSession(token []byte)
	GetSession() ([]byte, bool)
}

// MemorySessionStore keeps a single token in memory for the lifetime of the
// process. The last StoreSession wins. It is safe for concurrent use.
type MemorySessionStore struct {
	mu    sync.RWMutex
	token []byte
	set   bool
}

// NewMemorySessionStore returns an empty store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

// StoreSession replaces the current token with a copy of token.
func (s *MemorySessionStore) StoreSession(token []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = append([]byte{}, token...)
	s.set = true
}

// GetSession returns a copy of the current token, or false if none was stored.
func (s *MemorySessionStore) GetSession() ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return nil, false
	}
	return append([]byte{}, s.token...), true
}
