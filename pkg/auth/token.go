// Package auth owns the bearer token for the remote calendar: one
// persisted credential with a single owner responsible for loading,
// storing, and invalidating it.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	homedir "github.com/mitchellh/go-homedir"
)

const defaultTokenPath = "~/.tempo.token.json"

type tokenFile struct {
	AccessToken string    `json:"access_token"`
	ObtainedAt  time.Time `json:"obtained_at"`
}

// Session holds the current bearer token and persists changes to disk.
// An absent token means remote mutations are disallowed and only the
// API-key read path is available.
type Session struct {
	mu    sync.RWMutex
	path  string
	token string
}

// LoadSession reads any previously stored token from the default
// location. A missing token file is not an error.
func LoadSession() (*Session, error) {
	path, err := homedir.Expand(defaultTokenPath)
	if err != nil {
		return nil, fmt.Errorf("auth: resolve token path: %w", err)
	}
	return LoadSessionFrom(path)
}

// LoadSessionFrom reads the token stored at path, if any.
func LoadSessionFrom(path string) (*Session, error) {
	s := &Session{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("auth: read token: %w", err)
	}
	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("auth: decode token: %w", err)
	}
	s.token = tf.AccessToken
	return s, nil
}

// Token returns the current bearer token, or "" when disconnected.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authorized reports whether a bearer token is present.
func (s *Session) Authorized() bool { return s.Token() != "" }

// Set stores a freshly granted token and persists it with 0600
// permissions via an atomic rename.
func (s *Session) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" {
		return errors.New("auth: empty token")
	}

	data, err := json.MarshalIndent(tokenFile{AccessToken: token, ObtainedAt: time.Now()}, "", "  ")
	if err != nil {
		return fmt.Errorf("auth: encode token: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("auth: write token: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("auth: commit token: %w", err)
	}
	s.token = token
	return nil
}

// Clear forgets the token and removes the persisted copy.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("auth: remove token: %w", err)
	}
	return nil
}
