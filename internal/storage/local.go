package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage on a directory of the local filesystem.
// Objects are expected to be served statically under publicBase by the router.
type LocalStorage struct {
	root       string
	publicBase string
}

// NewLocalStorage ensures root exists and returns a LocalStorage writing to it.
// root is taken as-is, so a relative path resolves against the working directory.
func NewLocalStorage(root, publicBase string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", root, err)
	}
	return &LocalStorage{
		root:       root,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Root returns the directory objects are written to.
func (s *LocalStorage) Root() string {
	return s.root
}

// Upload writes reader to root/key, replacing any existing file of that name.
// size is advisory; the full reader is copied.
func (s *LocalStorage) Upload(ctx context.Context, key string, reader io.Reader, _ int64, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("create upload dir %q: %w", s.root, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", key, err)
	}
	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", key, err)
	}
	return nil
}

// Delete removes root/key. Deleting a missing key is not an error.
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// PublicURL returns publicBase + "/" + key, e.g. "/uploads/1700000000000-42.png".
func (s *LocalStorage) PublicURL(key string) string {
	return s.publicBase + "/" + key
}

func (s *LocalStorage) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.root, key), nil
}
