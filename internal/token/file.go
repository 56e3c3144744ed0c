package token

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const credentialsFileName = "credentials.json"

// FileSource persists the token pair as JSON under fixed keys ("access",
// "refresh") in a credentials file, the CLI analog of the browser's local
// storage. The file is created with 0600 permissions.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource at the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// DefaultFileSource returns a FileSource at ~/.smecert/credentials.json.
func DefaultFileSource() (*FileSource, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("find home directory: %w", err)
	}
	return NewFileSource(filepath.Join(home, ".smecert", credentialsFileName)), nil
}

// Path returns the credentials file location.
func (s *FileSource) Path() string {
	return s.path
}

func (s *FileSource) Pair() (Pair, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Pair{}, nil
		}
		return Pair{}, fmt.Errorf("read credentials: %w", err)
	}
	var p Pair
	if err := json.Unmarshal(data, &p); err != nil {
		return Pair{}, fmt.Errorf("parse credentials: %w", err)
	}
	return p, nil
}

func (s *FileSource) SetAccess(access string) error {
	p, err := s.Pair()
	if err != nil {
		return err
	}
	p.Access = access
	return s.Set(p)
}

func (s *FileSource) Set(p Pair) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func (s *FileSource) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}
