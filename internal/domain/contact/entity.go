package contact

import (
	"time"

	"contacts-api/internal/domain/user"
)

type (
	ID      int64
	Contact struct {
		ID             ID
		OwnerID        user.ID
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

	// Draft is the payload of a new contact, before the store assigns id and owner.
	Draft struct {
		FirstName      string
		LastName       string
		Email          string
		Phone          string
		Birthday       time.Time
		AdditionalData *string
	}

	Page struct {
		Skip  int
		Limit int
	}
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Normalize clamps p into the range every store accepts.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	switch {
	case p.Limit < 1:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}

	return p
}

// Apply copies every present field of p onto c. Owner and id are never touched.
func (c *Contact) Apply(p Patch) {
	if v, ok := p.FirstName.Get(); ok {
		c.FirstName = v
	}
	if v, ok := p.LastName.Get(); ok {
		c.LastName = v
	}
	if v, ok := p.Email.Get(); ok {
		c.Email = v
	}
	if v, ok := p.Phone.Get(); ok {
		c.Phone = v
	}
	if v, ok := p.Birthday.Get(); ok {
		c.Birthday = v
	}
	if v, ok := p.AdditionalData.Get(); ok {
		c.AdditionalData = v
	}
}
