package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Directory permissions for session storage.
const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// Storage maps session ids to their upload and output directories.
// A session exists while its directories do; there is no registry.
type Storage struct {
	uploadRoot string
	outputRoot string
}

// NewStorage creates both roots if absent and returns a Storage over them.
func NewStorage(uploadRoot, outputRoot string) (*Storage, error) {
	if uploadRoot == "" || outputRoot == "" {
		return nil, fmt.Errorf("%w: storage roots cannot be empty", ErrStorage)
	}

	for _, root := range []string{uploadRoot, outputRoot} {
		if err := os.MkdirAll(root, dirPerm); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
	}

	return &Storage{uploadRoot: uploadRoot, outputRoot: outputRoot}, nil
}

// Roots returns the upload and output root directories.
func (s *Storage) Roots() (uploadRoot, outputRoot string) {
	return s.uploadRoot, s.outputRoot
}

// UploadDir returns the upload directory of a session.
func (s *Storage) UploadDir(id string) string {
	return filepath.Join(s.uploadRoot, id)
}

// OutputDir returns the output directory of a session.
func (s *Storage) OutputDir(id string) string {
	return filepath.Join(s.outputRoot, id)
}

// create makes both session directories.
func (s *Storage) create(id string) error {
	if err := os.MkdirAll(s.UploadDir(id), dirPerm); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := os.MkdirAll(s.OutputDir(id), dirPerm); err != nil {
		_ = os.RemoveAll(s.UploadDir(id))
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// remove deletes both session directories. Missing directories are not errors.
func (s *Storage) remove(id string) error {
	return errors.Join(
		os.RemoveAll(s.UploadDir(id)),
		os.RemoveAll(s.OutputDir(id)),
	)
}

// newSessionID returns a random UUID v4 string.
func newSessionID() string {
	return uuid.New().String()
}

// fallbackToken returns 8 hex characters for generated filenames.
func fallbackToken() string {
	return uuid.New().String()[:8]
}

// ValidID reports whether id is a well-formed session id.
// Anything else never maps to a directory, which keeps client-supplied
// ids from escaping the storage roots.
func ValidID(id string) bool {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	// uuid.Parse also accepts urn: and braced forms; only the canonical one maps to a dir.
	return parsed.String() == id
}
