package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tokenEnvVar overrides the persisted token without touching disk.
const tokenEnvVar = "PETDEX_TOKEN"

// Store persists the session token across runs: a single string value under
// a fixed path, read at startup and rewritten on every token change.
type Store struct {
	path string
}

// NewStore returns the default store backed by ~/.petdex/token.
func NewStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home dir: %w", err)
	}
	return NewStoreAt(filepath.Join(home, ".petdex", "token")), nil
}

// NewStoreAt returns a store backed by the given file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Token returns the current token using precedence: env var > file > empty.
func (s *Store) Token() string {
	if tok := os.Getenv(tokenEnvVar); tok != "" {
		return tok
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save writes the token to disk, creating the parent directory if needed.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear removes the persisted token. Clearing an already empty store is not
// an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
