package ports

import (
	"context"

	"contacts-api/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*user.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}
