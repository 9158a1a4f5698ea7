package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/Fardeen26/flashfeed/internal/domain"
	"github.com/Fardeen26/flashfeed/internal/repositories"
	"github.com/Fardeen26/flashfeed/internal/repositories/storyview"
)

type StoryViewRepository struct {
	db *sql.DB
}

var _ storyview.Repository = (*StoryViewRepository)(nil)

func (r *StoryViewRepository) Create(ctx context.Context, view domain.StoryView) error {
	query, args, err := builder.
		Insert("story_views").
		Columns("viewer_id", "story_id", "viewed_at").
		Values(view.ViewerID, view.StoryID, toMillis(view.ViewedAt)).
		Suffix("ON CONFLICT (viewer_id, story_id) DO NOTHING").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return storyview.ErrAlreadyExists
		case isForeignKeyViolation(err):
			return storyview.ErrStoryNotFound
		}
		return errors.Join(err, storyview.ErrCannotCreate)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("story view rows affected: %w", err)
	}
	if affected == 0 {
		return storyview.ErrAlreadyExists
	}
	return nil
}

func (r *StoryViewRepository) GetViewedStoryIDs(ctx context.Context, viewerID string) ([]string, error) {
	query, args, err := builder.
		Select("story_id").
		From("story_views").
		Where(sq.Eq{"viewer_id": viewerID}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list viewed stories: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan viewed story: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *StoryViewRepository) GetViewers(ctx context.Context, storyID string, excludeUserID string) ([]domain.Viewer, error) {
	query, args, err := builder.
		Select("u.id", "u.username", "u.full_name", "u.image_url", "v.viewed_at").
		From("story_views v").
		Join("users u ON u.id = v.viewer_id").
		Where(sq.Eq{"v.story_id": storyID}).
		Where(sq.NotEq{"v.viewer_id": excludeUserID}).
		OrderBy("v.viewed_at ASC", "u.id ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list story viewers: %w", err)
	}
	defer rows.Close()

	var viewers []domain.Viewer
	for rows.Next() {
		var (
			v        domain.Viewer
			viewedAt int64
		)
		if err := rows.Scan(&v.UserID, &v.Username, &v.FullName, &v.ImageURL, &viewedAt); err != nil {
			return nil, fmt.Errorf("scan story viewer: %w", err)
		}
		v.ViewedAt = fromMillis(viewedAt)
		viewers = append(viewers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return viewers, nil
}
