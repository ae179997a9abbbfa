package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"eventregistration/internal/domain"
)

// LocalStore writes banners below a directory that the HTTP layer serves at /uploads/.
type LocalStore struct {
	basePath string
	baseURL  string
}

// NewLocalStore creates basePath if needed. baseURL is the public prefix, e.g.
// http://localhost:8080/uploads.
func NewLocalStore(basePath, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %s: %w", basePath, err)
	}
	return &LocalStore{basePath: basePath, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Dir is the directory banners are written to.
func (s *LocalStore) Dir() string {
	return s.basePath
}

func (s *LocalStore) Save(ctx context.Context, upload *domain.BannerUpload) (string, error) {
	b, err := inspect(upload)
	if err != nil {
		return "", err
	}
	full, err := s.path(b.key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create banner directory: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create banner file: %w", err)
	}
	if _, err := io.Copy(f, b.body); err != nil {
		f.Close()
		os.Remove(full)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("close banner file: %w", err)
	}
	return b.key, nil
}

// Delete removes the file for key; a missing file is not an error.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	full, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete banner %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.baseURL + "/" + strings.TrimPrefix(key, "/")
}

// path resolves key inside basePath and rejects keys that escape it.
func (s *LocalStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(key, "/")))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid banner key %q", key)
	}
	return filepath.Join(s.basePath, clean), nil
}
