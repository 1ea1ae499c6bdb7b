package contact

import (
	"context"

	"contacts-api/internal/domain/user"
)

type Repository interface {
	Create(ctx context.Context, ownerID user.ID, req Draft) (*Contact, error)
	FetchByID(ctx context.Context, ownerID user.ID, id ID) (*Contact, error)
	FetchByIDForUpdate(ctx context.Context, ownerID user.ID, id ID) (*Contact, error)
	Update(ctx context.Context, ownerID user.ID, req Contact) (*Contact, error)
	Delete(ctx context.Context, ownerID user.ID, id ID) error
	FetchContacts(ctx context.Context, ownerID user.ID, filter SearchFilter, page Page) (Contacts, error)
	FetchAll(ctx context.Context, ownerID user.ID) (Contacts, error)
	EmailExists(ctx context.Context, scope EmailScope, ownerID user.ID, email string, excludeID ID) (bool, error)
}

// UnitOfWork runs fn inside one transaction. The repository handed to fn is
// bound to that transaction; it commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
