package storage

import (
	"context"
	"errors"
	"io"
)

var ErrDisabled = errors.New("avatar storage is not configured")

// Disabled rejects every upload. Used when AVATAR_STORAGE=none.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, io.Reader, int64, string) (string, error) {
	return "", ErrDisabled
}
