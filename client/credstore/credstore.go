// Package credstore persists the single bearer token a client keeps
// across restarts. No expiry is enforced here; an expired token is only
// discovered when the profile fetch rejects it.
package credstore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Store holds at most one token. Load returns "" when no token is saved.
type Store interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

const tokenFileName = "token"

// FileStore keeps the token in a file under the user config dir,
// scoped by app name.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(appName string) (*FileStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, errors.Wrap(err, "locating user config dir")
	}
	dir = filepath.Join(dir, strings.ToLower(appName))
	if err = os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "creating config dir")
	}
	return &FileStore{path: filepath.Join(dir, tokenFileName)}, nil
}

func (s *FileStore) Save(token string) error {
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return errors.Wrap(err, "saving token")
	}
	return nil
}

func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(err, "loading token")
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "clearing token")
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	token string
}

var _ Store = (*MemStore)(nil)

func NewMemStore(token string) *MemStore { return &MemStore{token: token} }

func (s *MemStore) Save(token string) error { s.token = token; return nil }
func (s *MemStore) Load() (string, error)   { return s.token, nil }
func (s *MemStore) Clear() error            { s.token = ""; return nil }
