package ports

import (
	"context"
	"io"

	"contacts-api/internal/domain/user"
)

type UserService interface {
	FindUserByID(ctx context.Context, id user.ID) (*user.User, error)
	UploadAvatar(ctx context.Context, id user.ID, in AvatarFile) (*user.User, error)
}

// AvatarFile is an uploaded image as received by the transport layer.
type AvatarFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}
