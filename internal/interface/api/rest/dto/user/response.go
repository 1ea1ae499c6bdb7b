package user

import (
	"time"

	"contacts-api/internal/domain/user"
)

type (
	User struct {
		ID         int64     `json:"id"`
		Email      string    `json:"email"`
		IsVerified bool      `json:"is_verified"`
		AvatarURL  *string   `json:"avatar_url"`
		CreatedAt  time.Time `json:"created_at"`
	}
	AvatarResponse struct {
		AvatarURL string `json:"avatar_url"`
	}
)

func ToResponseUser(u user.User) User {
	return User{
		ID:         int64(u.ID),
		Email:      u.Email,
		IsVerified: u.IsVerified,
		AvatarURL:  u.AvatarURL,
		CreatedAt:  u.CreatedAt,
	}
}
