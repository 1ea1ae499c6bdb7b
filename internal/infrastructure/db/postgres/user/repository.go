package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"contacts-api/internal/domain/user"
	"contacts-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) user.Repository {
	return &Repository{db: db}
}

func scanUser(row pgx.Row) (*user.User, error) {
	u := new(User)
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.IsVerified,
		&u.AvatarURL,

		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	return scanUser(r.db.QueryRow(ctx, SelectUserByID, int64(id)))
}

func (r *Repository) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return scanUser(r.db.QueryRow(ctx, SelectUserByEmail, email))
}

func (r *Repository) CreateUser(ctx context.Context, email, passwordHash string) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, InsertUser, email, passwordHash))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, user.ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return u, nil
}

func (r *Repository) UpdateAvatarURL(ctx context.Context, id user.ID, url string) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, UpdateAvatarURLByID, url, int64(id)))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update avatar url: %w", err)
	}

	return u, nil
}
