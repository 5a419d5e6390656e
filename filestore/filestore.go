package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrTooLarge is returned when an upload exceeds the configured size limit.
var ErrTooLarge = errors.New("file too large")

// Store persists uploaded files and serves them back by name. The local disk
// implementation below can be swapped for an object store without touching
// the handlers.
type Store interface {
	// Save streams r to storage and returns the stored file name. It fails
	// with ErrTooLarge when r yields more than maxBytes bytes.
	Save(r io.Reader, originalName string, maxBytes int64) (string, error)

	// Delete removes a stored file. Deleting a missing file is a no-op.
	Delete(name string) error

	// Dir returns the directory files are served from.
	Dir() string
}

// Local stores files on the local filesystem under a single directory.
type Local struct {
	dir string
}

var _ Store = (*Local)(nil)

// NewLocal creates the storage directory if needed.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &Local{dir: dir}, nil
}

// Save writes the upload under a random name, keeping only the original
// extension. The random name prevents collisions and path traversal via
// attacker-chosen file names.
func (l *Local) Save(r io.Reader, originalName string, maxBytes int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext
	path := filepath.Join(l.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	// Read one byte past the limit to detect oversized uploads.
	written, err := io.Copy(f, io.LimitReader(r, maxBytes+1))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if written > maxBytes {
		_ = os.Remove(path)
		return "", ErrTooLarge
	}

	return name, nil
}

func (l *Local) Delete(name string) error {
	// The stored name is server-generated, but guard against separators
	// anyway.
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid stored file name %q", name)
	}
	err := os.Remove(filepath.Join(l.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (l *Local) Dir() string {
	return l.dir
}
