package user

import (
	"strconv"
	"time"
)

type (
	ID   int64
	User struct {
		ID           ID
		Email        string
		PasswordHash string
		IsVerified   bool
		AvatarURL    *string

		CreatedAt time.Time
	}
)

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}

	return ID(v), nil
}
