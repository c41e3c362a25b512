// Package storage defines the file storage collaborator contract. The core
// never touches the physical medium; it hands bytes to this port and keeps
// only the returned storage path on the Document entity.
package storage

import (
	"context"
	"io"

	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// StoredFile describes where an uploaded file landed.
type StoredFile struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// FileStorage is the physical storage collaborator. Like the repository
// ports, every method returns an Outcome.
type FileStorage interface {
	// Upload writes the content to the given storage path and returns the
	// canonical path plus a retrieval URL.
	Upload(ctx context.Context, content io.Reader, path string) outcome.Outcome[StoredFile]

	// Delete removes the file at the given storage path.
	Delete(ctx context.Context, path string) outcome.Outcome[outcome.Unit]

	// GetURL returns a retrieval URL for the given storage path.
	GetURL(ctx context.Context, path string) outcome.Outcome[string]

	// Download streams the file back. The caller owns closing the reader.
	Download(ctx context.Context, path string) outcome.Outcome[io.ReadCloser]
}
