package storyview

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/Fardeen26/flashfeed/internal/domain"
	"github.com/Fardeen26/flashfeed/internal/repositories"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("StoryViewRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Create(ctx context.Context, view domain.StoryView) error {
	query, args, err := repositories.SqBuilder.
		Insert("story_views").
		Columns("viewer_id", "story_id", "viewed_at").
		Values(view.ViewerID, view.StoryID, view.ViewedAt).
		Suffix("ON CONFLICT (viewer_id, story_id) DO NOTHING").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case repositories.PgUniqueViolation:
				return ErrAlreadyExists
			case repositories.PgForeignKeyViolation:
				return ErrStoryNotFound
			}
		}
		return errors.Join(err, ErrCannotCreate)
	}

	if result.RowsAffected() == 0 {
		return ErrAlreadyExists
	}

	return nil
}

func (p *Pgx) GetViewedStoryIDs(ctx context.Context, viewerID string) ([]string, error) {
	query, args, err := repositories.SqBuilder.
		Select("story_id").
		From("story_views").
		Where(sq.Eq{"viewer_id": viewerID}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
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

func (p *Pgx) GetViewers(ctx context.Context, storyID string, excludeUserID string) ([]domain.Viewer, error) {
	query, args, err := repositories.SqBuilder.
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

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var viewers []domain.Viewer
	for rows.Next() {
		var v domain.Viewer
		if err := rows.Scan(&v.UserID, &v.Username, &v.FullName, &v.ImageURL, &v.ViewedAt); err != nil {
			return nil, err
		}
		viewers = append(viewers, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return viewers, nil
}
