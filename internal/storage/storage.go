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

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ErrFileNotFound is returned when a stored file does not exist.
var ErrFileNotFound = errors.New("stored file not found")

// FileStore persists uploaded documents. Paths returned by Save are relative
// to the store root and are what the database keeps.
type FileStore interface {
	Save(ctx context.Context, r io.Reader, suggestedName, dir string) (string, error)
	Delete(ctx context.Context, path string) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

type LocalFileStore struct {
	root string
}

func NewLocalFileStore(root string) (*LocalFileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalFileStore{root: root}, nil
}

func (s *LocalFileStore) Save(ctx context.Context, r io.Reader, suggestedName, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel := filepath.Join(slug.Make(dir), StoredName(suggestedName))
	full := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return filepath.ToSlash(rel), nil
}

func (s *LocalFileStore) Delete(ctx context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrFileNotFound
		}
		return err
	}
	return nil
}

func (s *LocalFileStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrFileNotFound
	}
	return f, err
}

// resolve keeps every access inside the store root.
func (s *LocalFileStore) resolve(path string) (string, error) {
	if path == "" {
		return "", ErrFileNotFound
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid stored path %q", path)
	}
	return filepath.Join(s.root, clean), nil
}

// StoredName builds a collision-free file name that keeps the original extension.
func StoredName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := slug.Make(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if base == "" {
		base = "file"
	}
	return uuid.NewString()[:8] + "-" + base + ext
}
