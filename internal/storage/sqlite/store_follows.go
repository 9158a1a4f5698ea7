package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/Fardeen26/flashfeed/internal/domain"
	"github.com/Fardeen26/flashfeed/internal/repositories"
	"github.com/Fardeen26/flashfeed/internal/repositories/follow"
)

type FollowRepository struct {
	db *sql.DB
}

var _ follow.Repository = (*FollowRepository)(nil)

func (r *FollowRepository) Create(ctx context.Context, edge domain.FollowEdge) error {
	if edge.FollowerID == edge.FollowingID {
		return fmt.Errorf("follow self: %w", domain.ErrInvalidInput)
	}
	query, args, err := builder.
		Insert("follows").
		Columns("follower_id", "following_id", "created_at").
		Values(edge.FollowerID, edge.FollowingID, toMillis(edge.CreatedAt)).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		switch {
		case isUniqueViolation(err):
			return follow.ErrAlreadyExists
		case isForeignKeyViolation(err):
			return fmt.Errorf("follow user: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create follow: %w", err)
	}
	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, followerID, followingID string) error {
	query, args, err := builder.
		Delete("follows").
		Where(sq.Eq{"follower_id": followerID, "following_id": followingID}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete follow rows affected: %w", err)
	}
	if affected == 0 {
		return follow.ErrNotFound
	}
	return nil
}

func (r *FollowRepository) GetFollowedIDs(ctx context.Context, followerID string) ([]string, error) {
	return r.selectIDs(ctx, "following_id", sq.Eq{"follower_id": followerID})
}

func (r *FollowRepository) GetFollowerIDs(ctx context.Context, followingID string) ([]string, error) {
	return r.selectIDs(ctx, "follower_id", sq.Eq{"following_id": followingID})
}

func (r *FollowRepository) selectIDs(ctx context.Context, column string, where sq.Eq) ([]string, error) {
	query, args, err := builder.
		Select(column).
		From("follows").
		Where(where).
		OrderBy(column + " ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list follows: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan follow: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
