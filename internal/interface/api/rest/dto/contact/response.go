package contact

import (
	"time"

	domain "contacts-api/internal/domain/contact"
)

type (
	Contact struct {
		ID             int64     `json:"id"`
		FirstName      string    `json:"first_name"`
		LastName       string    `json:"last_name"`
		Email          string    `json:"email"`
		Phone          string    `json:"phone"`
		Birthday       string    `json:"birthday"`
		AdditionalData *string   `json:"additional_data"`
		CreatedAt      time.Time `json:"created_at"`
		UpdatedAt      time.Time `json:"updated_at"`
	}
	Contacts []Contact

	UpcomingBirthday struct {
		Contact      Contact `json:"contact"`
		DaysUntil    int     `json:"days_until"`
		NextBirthday string  `json:"next_birthday"`
	}
	UpcomingBirthdays []UpcomingBirthday
)

func ToResponseContact(c domain.Contact) Contact {
	return Contact{
		ID:             int64(c.ID),
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		Birthday:       c.Birthday.Format(DateLayout),
		AdditionalData: c.AdditionalData,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func ToResponseContacts(cs domain.Contacts) Contacts {
	out := make(Contacts, len(cs))
	for idx, c := range cs {
		out[idx] = ToResponseContact(*c)
	}

	return out
}

func ToResponseUpcoming(bs domain.UpcomingBirthdays) UpcomingBirthdays {
	out := make(UpcomingBirthdays, len(bs))
	for idx, b := range bs {
		out[idx] = UpcomingBirthday{
			Contact:      ToResponseContact(*b.Contact),
			DaysUntil:    b.DaysUntil,
			NextBirthday: b.NextBirthday.Format(DateLayout),
		}
	}

	return out
}
