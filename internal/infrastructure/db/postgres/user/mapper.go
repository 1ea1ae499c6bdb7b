package user

import (
	domain "contacts-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		ID:           domain.ID(model.ID),
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		IsVerified:   model.IsVerified,
		AvatarURL:    model.AvatarURL,

		CreatedAt: model.CreatedAt,
	}

	return u
}
