package follow

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/Fardeen26/flashfeed/internal/domain"
	"github.com/Fardeen26/flashfeed/internal/repositories"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRepository struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

func NewPgxRepository(pool *pgxpool.Pool, logger logger.Logger) *PgxRepository {
	return &PgxRepository{
		pool:   pool,
		logger: logger.WithComponent("FollowRepo"),
	}
}

var _ Repository = (*PgxRepository)(nil)

func (r *PgxRepository) Create(ctx context.Context, edge domain.FollowEdge) error {
	if edge.FollowerID == edge.FollowingID {
		return fmt.Errorf("follow self: %w", domain.ErrInvalidInput)
	}

	query, args, err := repositories.SqBuilder.
		Insert("follows").
		Columns("follower_id", "following_id", "created_at").
		Values(edge.FollowerID, edge.FollowingID, edge.CreatedAt).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case repositories.PgUniqueViolation:
				return ErrAlreadyExists
			case repositories.PgForeignKeyViolation:
				return fmt.Errorf("follow user: %w", domain.ErrNotFound)
			}
		}
		return err
	}
	return nil
}

func (r *PgxRepository) Delete(ctx context.Context, followerID, followingID string) error {
	query, args, err := repositories.SqBuilder.
		Delete("follows").
		Where(sq.Eq{"follower_id": followerID, "following_id": followingID}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PgxRepository) GetFollowedIDs(ctx context.Context, followerID string) ([]string, error) {
	return r.selectIDs(ctx, "following_id", sq.Eq{"follower_id": followerID})
}

func (r *PgxRepository) GetFollowerIDs(ctx context.Context, followingID string) ([]string, error) {
	return r.selectIDs(ctx, "follower_id", sq.Eq{"following_id": followingID})
}

func (r *PgxRepository) selectIDs(ctx context.Context, column string, where sq.Eq) ([]string, error) {
	query, args, err := repositories.SqBuilder.
		Select(column).
		From("follows").
		Where(where).
		OrderBy(column + " ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
