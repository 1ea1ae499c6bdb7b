package ports

import (
	"context"

	"contacts-api/internal/domain/contact"
	"contacts-api/internal/domain/user"
)

type ContactService interface {
	CreateContact(ctx context.Context, ownerID user.ID, req contact.Draft) (*contact.Contact, error)
	FindContact(ctx context.Context, ownerID user.ID, id contact.ID) (*contact.Contact, error)
	FindContacts(ctx context.Context, ownerID user.ID, filter contact.SearchFilter, page contact.Page) (contact.Contacts, error)
	UpdateContact(ctx context.Context, ownerID user.ID, id contact.ID, patch contact.Patch) (*contact.Contact, error)
	DeleteContact(ctx context.Context, ownerID user.ID, id contact.ID) error
	UpcomingBirthdays(ctx context.Context, ownerID user.ID, days int) (contact.UpcomingBirthdays, error)
}
