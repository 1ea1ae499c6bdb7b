package contact

import "time"

type (
	Contact struct {
		ID             int64
		OwnerID        int64
		FirstName      string
		LastName       string
		Email          string
		Phone          string
		Birthday       time.Time
		AdditionalData *string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Contacts []*Contact
)
