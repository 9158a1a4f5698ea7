package story

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/Fardeen26/flashfeed/internal/domain"
	"github.com/Fardeen26/flashfeed/internal/repositories"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var storyColumns = []string{"id", "owner_id", "image_url", "storage_handle", "created_at", "expires_at"}

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("StoryRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Create(ctx context.Context, story domain.Story) error {
	query, args, err := repositories.SqBuilder.
		Insert("stories").
		Columns(storyColumns...).
		Values(
			story.ID,
			story.OwnerID,
			story.ImageURL,
			story.StorageHandle,
			story.CreatedAt,
			story.ExpiresAt,
		).ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == repositories.PgForeignKeyViolation {
			return errors.Join(err, ErrCannotCreate, domain.ErrNotFound)
		}
		return errors.Join(err, ErrCannotCreate)
	}

	return nil
}

func (p *Pgx) GetByID(ctx context.Context, id string) (*domain.Story, error) {
	query, args, err := repositories.SqBuilder.
		Select(storyColumns...).
		From("stories").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var story domain.Story
	err = p.pg.QueryRow(ctx, query, args...).Scan(
		&story.ID,
		&story.OwnerID,
		&story.ImageURL,
		&story.StorageHandle,
		&story.CreatedAt,
		&story.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &story, nil
}

// GetActiveByOwner is served by stories_owner_id_expires_at_idx.
func (p *Pgx) GetActiveByOwner(ctx context.Context, ownerID string, now time.Time) ([]domain.Story, error) {
	query, args, err := repositories.SqBuilder.
		Select(storyColumns...).
		From("stories").
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.Gt{"expires_at": now}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []domain.Story
	for rows.Next() {
		var story domain.Story
		if err := rows.Scan(
			&story.ID,
			&story.OwnerID,
			&story.ImageURL,
			&story.StorageHandle,
			&story.CreatedAt,
			&story.ExpiresAt,
		); err != nil {
			return nil, err
		}
		stories = append(stories, story)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stories, nil
}

func (p *Pgx) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := repositories.SqBuilder.
		Delete("stories").
		Where(sq.Lt{"expires_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}
