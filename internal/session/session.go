package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Identity is the authenticated user as the gateway knows it. The token is
// the upstream access token; it is trusted until the next upstream call
// rejects it with a 401.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Store holds at most one authenticated identity, persisted as a single JSON
// document so a restart resumes the session. It is injected into the handlers
// that need it rather than living as package-level state, so tests can run
// isolated sessions side by side.
type Store struct {
	mu      sync.RWMutex
	path    string
	current *Identity
}

// NewStore loads any persisted identity from path. A missing, empty or
// corrupted file degrades to "no identity" instead of failing startup.
func NewStore(path string) *Store {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil || id.Name == "" || id.Token == "" {
		return s
	}

	s.current = &id
	return s
}

// SignIn replaces the current identity and persists it.
func (s *Store) SignIn(id Identity) error {
	if id.Name == "" || id.Token == "" {
		return errors.New("session: identity requires a name and a token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &id
	return s.persist(&id)
}

// SignOut destroys the session and its persisted state.
func (s *Store) SignOut() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: remove persisted state: %w", err)
	}
	return nil
}

// Current returns the authenticated identity, or false when anonymous.
func (s *Store) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

func (s *Store) persist(id *Identity) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("session: encode identity: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("session: create state dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("session: write persisted state: %w", err)
	}
	return nil
}
