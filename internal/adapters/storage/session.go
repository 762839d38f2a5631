package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// SessionFile persists the session record as a single file readable only by
// the current user.
type SessionFile struct {
	path string
}

func NewSessionFile(path string) *SessionFile {
	return &SessionFile{path: path}
}

// DefaultSessionPath is <user config dir>/resizer/session.json.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error locating config directory: %w", err)
	}

	return filepath.Join(dir, "resizer", "session.json"), nil
}

func (s *SessionFile) Path() string {
	return s.path
}

func (s *SessionFile) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading session file: %w", err)
	}

	return data, nil
}

// Save writes the record through a temp file so a crash never leaves a
// partial record behind.
func (s *SessionFile) Save(record []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("error creating session directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return fmt.Errorf("error creating session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(record); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing session file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing session file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("error replacing session file: %w", err)
	}

	log.Debug().Str("path", s.path).Msg("saved session")

	return nil
}

func (s *SessionFile) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error removing session file: %w", err)
	}

	log.Debug().Str("path", s.path).Msg("removed session")

	return nil
}
