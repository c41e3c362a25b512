// Package localfs stores uploaded files on the local filesystem under a
// configured root directory. Storage paths handed in by the core are
// slash-separated and relative; the adapter refuses anything that would
// escape the root.
package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/storage"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

type LocalFileStorage struct {
	rootDir string
	baseURL string
}

var _ storage.FileStorage = (*LocalFileStorage)(nil)

// NewLocalFileStorage creates the root directory if it does not exist.
// baseURL prefixes the retrieval URLs, e.g. "/files".
func NewLocalFileStorage(rootDir, baseURL string) (*LocalFileStorage, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("storage root directory is required")
	}
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", rootDir, err)
	}
	return &LocalFileStorage{
		rootDir: rootDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// resolve maps a storage path to an absolute path under the root and rejects
// traversal attempts.
func (s *LocalFileStorage) resolve(path string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(path))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("%w: invalid storage path %q", apperrors.ErrValidation, path)
	}
	return filepath.Join(s.rootDir, cleaned), nil
}

func (s *LocalFileStorage) Upload(ctx context.Context, content io.Reader, path string) outcome.Outcome[storage.StoredFile] {
	full, err := s.resolve(path)
	if err != nil {
		return outcome.Fail[storage.StoredFile](err)
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return outcome.Failf[storage.StoredFile]("failed to create directory for %s: %w", path, err)
	}

	f, err := os.Create(full)
	if err != nil {
		return outcome.Failf[storage.StoredFile]("failed to create file %s: %w", path, err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(full)
		return outcome.Failf[storage.StoredFile]("failed to write file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return outcome.Failf[storage.StoredFile]("failed to close file %s: %w", path, err)
	}

	return outcome.Ok(storage.StoredFile{
		Path: path,
		URL:  s.url(path),
	})
}

func (s *LocalFileStorage) Delete(ctx context.Context, path string) outcome.Outcome[outcome.Unit] {
	full, err := s.resolve(path)
	if err != nil {
		return outcome.Fail[outcome.Unit](err)
	}
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return outcome.Failf[outcome.Unit]("%w: stored file %s", apperrors.ErrNotFound, path)
		}
		return outcome.Failf[outcome.Unit]("failed to delete file %s: %w", path, err)
	}
	return outcome.Done()
}

func (s *LocalFileStorage) GetURL(ctx context.Context, path string) outcome.Outcome[string] {
	if _, err := s.resolve(path); err != nil {
		return outcome.Fail[string](err)
	}
	return outcome.Ok(s.url(path))
}

func (s *LocalFileStorage) Download(ctx context.Context, path string) outcome.Outcome[io.ReadCloser] {
	full, err := s.resolve(path)
	if err != nil {
		return outcome.Fail[io.ReadCloser](err)
	}
	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return outcome.Failf[io.ReadCloser]("%w: stored file %s", apperrors.ErrNotFound, path)
		}
		return outcome.Failf[io.ReadCloser]("failed to open file %s: %w", path, err)
	}
	return outcome.Ok[io.ReadCloser](f)
}

func (s *LocalFileStorage) url(path string) string {
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}
