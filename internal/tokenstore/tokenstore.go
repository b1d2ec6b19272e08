// Package tokenstore persists the session's bearer token. The store is an
// explicit dependency of the SDK so session handling has no hidden
// environment coupling and tests can substitute a fake.
package tokenstore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store holds at most one bearer token.
type Store interface {
	// Token returns the persisted token and whether one is present.
	Token() (string, bool)
	// Save replaces the persisted token.
	Save(token string) error
	// Clear removes the persisted token. Clearing an empty store is a no-op.
	Clear() error
}

// MemStore keeps the token in process memory. It is the default for
// short-lived programs and the fake used by tests.
type MemStore struct {
	mu    sync.Mutex
	token string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore { return &MemStore{} }

func (m *MemStore) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *MemStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// FileStore persists the token to a single file, the CLI's equivalent of
// durable browser storage. The file is written 0600.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path. The parent directory is
// created on first Save.
func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

func (f *FileStore) Token() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := os.ReadFile(f.path)
	if err != nil {
		return "", false
	}
	tok := strings.TrimSpace(string(b))
	return tok, tok != ""
}

func (f *FileStore) Save(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(token), 0o600)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
