// Package storage contains the archive-store abstraction holding rendered and
// merged label documents. Implementations must avoid local disk and rely on
// streaming I/O only.
package storage

import (
	"context"
	"io"
)

// Object describes an archived document addressed by an opaque ID.
type Object struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Archive is the remote binary store for rendered documents. Documents are
// created under a backend-specific folder (Drive folder ID, object key
// prefix) and addressed by the returned opaque ID afterwards.
type Archive interface {
	// Create uploads a document and returns its ID and access URL.
	Create(ctx context.Context, folder, name, contentType string, r io.Reader, size int64) (Object, error)
	// Open retrieves a document's content as a streaming reader.
	Open(ctx context.Context, id string) (io.ReadCloser, error)
	// Delete removes a document by ID.
	Delete(ctx context.Context, id string) error
}
