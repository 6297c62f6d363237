package storage

import (
	"context"
	"io"
)

// Store abstracts the image bucket. Implementations return a publicly
// reachable URL for each saved object and map missing keys to
// domain.NotFound.
type Store interface {
	// Save writes the object under key and returns its public URL.
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)

	// Delete removes the object; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Open reads the object back. Only the local backend serves reads
	// through the API; the bucket backend's URLs bypass the server.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}
