package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"laundry-service/internal/data/entity"
	"laundry-service/internal/dto/response"
)

// Identity is what survives between runs: the user, their role and token.
type Identity struct {
	User      response.UserResponse `json:"user"`
	Role      entity.UserRole       `json:"role"`
	Token     string                `json:"token"`
	ExpiresAt time.Time             `json:"expiresAt"`
}

// Session persists the current Identity as JSON at path. An empty path keeps
// it in memory only.
type Session struct {
	path string

	mu       sync.RWMutex
	identity *Identity
}

// DefaultSessionPath is <user config dir>/laundry-service/session.json.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "laundry-service", "session.json"), nil
}

// OpenSession loads the identity stored at path, if any. A missing or
// unreadable file yields an empty session.
func OpenSession(path string) (*Session, error) {
	s := &Session{path: path}
	if path == "" {
		return s, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var identity Identity
	if err := json.Unmarshal(raw, &identity); err != nil || identity.Token == "" {
		return s, nil
	}
	s.identity = &identity
	return s, nil
}

// Login stores the credential returned by register or login.
func (s *Session) Login(auth *response.AuthResponse) error {
	identity := &Identity{
		User:      auth.User,
		Role:      auth.Role,
		Token:     auth.Token,
		ExpiresAt: auth.ExpiresAt,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(identity); err != nil {
		return err
	}
	s.identity = identity
	return nil
}

// Clear forgets the identity and removes the file.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = nil
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (s *Session) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return ""
	}
	return s.identity.Token
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.identity != nil && s.identity.Role == entity.RoleAdmin
}

func (s *Session) write(identity *Identity) error {
	if s.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	raw, err := json.MarshalIndent(identity, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}
