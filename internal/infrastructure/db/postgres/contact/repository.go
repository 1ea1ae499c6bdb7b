package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domain "contacts-api/internal/domain/contact"
	"contacts-api/internal/domain/user"
	"contacts-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) domain.Repository {
	return &Repository{db: db}
}

func scanContact(row pgx.Row) (*Contact, error) {
	c := new(Contact)
	err := row.Scan(
		&c.ID,
		&c.OwnerID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.Birthday,
		&c.AdditionalData,

		&c.CreatedAt,
		&c.UpdatedAt,
	)

	return c, err
}

func (r *Repository) Create(ctx context.Context, ownerID user.ID, req domain.Draft) (*domain.Contact, error) {
	c, err := scanContact(r.db.QueryRow(
		ctx,
		InsertContact,
		int64(ownerID), req.FirstName, req.LastName, req.Email, req.Phone, req.Birthday, req.AdditionalData,
	))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert contact: %w", err)
	}

	return fromDBModel(c), nil
}

func (r *Repository) FetchByID(ctx context.Context, ownerID user.ID, id domain.ID) (*domain.Contact, error) {
	return r.fetchOne(ctx, SelectContactByID, ownerID, id)
}

func (r *Repository) FetchByIDForUpdate(ctx context.Context, ownerID user.ID, id domain.ID) (*domain.Contact, error) {
	return r.fetchOne(ctx, SelectContactByIDForUpdate, ownerID, id)
}

func (r *Repository) fetchOne(ctx context.Context, query string, ownerID user.ID, id domain.ID) (*domain.Contact, error) {
	c, err := scanContact(r.db.QueryRow(ctx, query, int64(id), int64(ownerID)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select contact %d: %w", id, err)
	}

	return fromDBModel(c), nil
}

func (r *Repository) Update(ctx context.Context, ownerID user.ID, req domain.Contact) (*domain.Contact, error) {
	c, err := scanContact(r.db.QueryRow(ctx, UpdateContactByID,
		req.FirstName, req.LastName, req.Email, req.Phone, req.Birthday, req.AdditionalData,
		int64(req.ID), int64(ownerID),
	))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update contact %d: %w", req.ID, err)
	}

	return fromDBModel(c), nil
}

func (r *Repository) Delete(ctx context.Context, ownerID user.ID, id domain.ID) error {
	tag, err := r.db.Exec(ctx, DeleteContactByID, int64(id), int64(ownerID))
	if err != nil {
		return fmt.Errorf("delete contact %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *Repository) FetchContacts(
	ctx context.Context,
	ownerID user.ID,
	filter domain.SearchFilter,
	page domain.Page,
) (domain.Contacts, error) {
	return r.fetchMany(ctx, SelectContacts,
		int64(ownerID),
		postgres.ContainsPattern(filter.FirstName),
		postgres.ContainsPattern(filter.LastName),
		postgres.ContainsPattern(filter.Email),
		page.Skip,
		page.Limit,
	)
}

func (r *Repository) FetchAll(ctx context.Context, ownerID user.ID) (domain.Contacts, error) {
	return r.fetchMany(ctx, SelectAllContacts, int64(ownerID))
}

func (r *Repository) fetchMany(ctx context.Context, query string, args ...any) (domain.Contacts, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select contacts: %w", err)
	}
	defer rows.Close()

	var cs Contacts
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		cs = append(cs, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(cs), nil
}

// EmailExists takes a transaction-scoped advisory lock on the email before
// checking it. The unique index only covers (owner_id, email), so this lock is
// what keeps two owners from inserting the same email under the global scope.
// Callers must run it inside a UnitOfWork.
func (r *Repository) EmailExists(
	ctx context.Context,
	scope domain.EmailScope,
	ownerID user.ID,
	email string,
	excludeID domain.ID,
) (bool, error) {
	var owner *int64
	if scope == domain.EmailScopeOwner {
		id := int64(ownerID)
		owner = &id
	}

	if _, err := r.db.Exec(ctx, LockEmail, emailLockKey(email)); err != nil {
		return false, fmt.Errorf("lock contact email: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, SelectEmailExists, email, int64(excludeID), owner).Scan(&exists); err != nil {
		return false, fmt.Errorf("check contact email: %w", err)
	}

	return exists, nil
}

func emailLockKey(email string) string { return "contacts.email:" + email }

// UnitOfWork binds a Repository to one database transaction.
type UnitOfWork struct {
	db postgres.TxBeginner
}

func NewUnitOfWork(db postgres.TxBeginner) domain.UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repo domain.Repository) error) error {
	return postgres.WithinTx(ctx, u.db, func(tx pgx.Tx) error {
		return fn(ctx, NewRepository(tx))
	})
}
