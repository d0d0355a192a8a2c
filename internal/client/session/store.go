// Package session owns the client's authentication state: the persisted
// access/refresh token pair and the Session derived from it. Nothing else in
// the client mutates the credential, except the gateway's refresh step which
// rewrites the access token.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Fixed storage keys for the persisted credential. The file is plain JSON
// with no encryption, readable by anything running as the same user.
const (
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
)

// FileStore persists the credential pair as a small JSON document. Reads go
// to disk every time so that an external change (or a refresh performed by a
// concurrent process) is picked up before the next request.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore builds a store backed by the file at path. The parent
// directory is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() map[string]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]string{}
	}
	tokens := map[string]string{}
	if err := json.Unmarshal(data, &tokens); err != nil {
		return map[string]string{}
	}
	return tokens
}

func (s *FileStore) save(tokens map[string]string) error {
	data, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write tokens: %w", err)
	}
	return nil
}

func (s *FileStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()[keyAccessToken]
}

func (s *FileStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()[keyRefreshToken]
}

func (s *FileStore) SetAccessToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tokens := s.load()
	tokens[keyAccessToken] = token
	return s.save(tokens)
}

func (s *FileStore) SetTokenPair(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tokens := map[string]string{keyAccessToken: access}
	if refresh != "" {
		tokens[keyRefreshToken] = refresh
	}
	return s.save(tokens)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemStore is an in-memory credential store for tests.
type MemStore struct {
	mu      sync.Mutex
	access  string
	refresh string
}

func NewMemStore(access, refresh string) *MemStore {
	return &MemStore{access: access, refresh: refresh}
}

func (s *MemStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

func (s *MemStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh
}

func (s *MemStore) SetAccessToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = token
	return nil
}

func (s *MemStore) SetTokenPair(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = access, refresh
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = "", ""
	return nil
}
