package ports

import (
	"context"
	"io"
)

type AvatarStorage interface {
	// Upload stores body under key and returns its public URL.
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}
