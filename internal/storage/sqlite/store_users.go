package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/Fardeen26/flashfeed/internal/domain"
	"github.com/Fardeen26/flashfeed/internal/repositories"
	"github.com/Fardeen26/flashfeed/internal/repositories/user"
)

var userColumns = []string{"id", "external_id", "username", "full_name", "image_url", "created_at"}

type UserRepository struct {
	db *sql.DB
}

var _ user.Repository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, u domain.User) error {
	query, args, err := builder.
		Insert("users").
		Columns(userColumns...).
		Values(u.ID, u.ExternalID, u.Username, u.FullName, u.ImageURL, toMillis(u.CreatedAt)).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return user.ErrAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	return r.getOne(ctx, sq.Eq{"external_id": externalID})
}

func (r *UserRepository) getOne(ctx context.Context, where sq.Eq) (*domain.User, error) {
	query, args, err := builder.
		Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var (
		u         domain.User
		createdAt int64
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&u.ID, &u.ExternalID, &u.Username, &u.FullName, &u.ImageURL, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt = fromMillis(createdAt)
	return &u, nil
}
