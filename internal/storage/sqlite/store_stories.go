package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/Fardeen26/flashfeed/internal/domain"
	"github.com/Fardeen26/flashfeed/internal/repositories"
	"github.com/Fardeen26/flashfeed/internal/repositories/story"
)

var storyColumns = []string{"id", "owner_id", "image_url", "storage_handle", "created_at", "expires_at"}

type StoryRepository struct {
	db *sql.DB
}

var _ story.Repository = (*StoryRepository)(nil)

func (r *StoryRepository) Create(ctx context.Context, s domain.Story) error {
	query, args, err := builder.
		Insert("stories").
		Columns(storyColumns...).
		Values(s.ID, s.OwnerID, s.ImageURL, s.StorageHandle, toMillis(s.CreatedAt), toMillis(s.ExpiresAt)).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return errors.Join(err, story.ErrCannotCreate, domain.ErrNotFound)
		}
		return errors.Join(err, story.ErrCannotCreate)
	}
	return nil
}

func (r *StoryRepository) GetByID(ctx context.Context, id string) (*domain.Story, error) {
	query, args, err := builder.
		Select(storyColumns...).
		From("stories").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	s, err := scanStory(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, story.ErrNotFound
		}
		return nil, fmt.Errorf("get story: %w", err)
	}
	return &s, nil
}

func (r *StoryRepository) GetActiveByOwner(ctx context.Context, ownerID string, now time.Time) ([]domain.Story, error) {
	query, args, err := builder.
		Select(storyColumns...).
		From("stories").
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.Gt{"expires_at": toMillis(now)}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active stories: %w", err)
	}
	defer rows.Close()

	var stories []domain.Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan story: %w", err)
		}
		stories = append(stories, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stories, nil
}

func (r *StoryRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := builder.
		Delete("stories").
		Where(sq.Lt{"expires_at": toMillis(cutoff)}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expired stories: %w", err)
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStory(row rowScanner) (domain.Story, error) {
	var (
		s         domain.Story
		createdAt int64
		expiresAt int64
	)
	if err := row.Scan(&s.ID, &s.OwnerID, &s.ImageURL, &s.StorageHandle, &createdAt, &expiresAt); err != nil {
		return domain.Story{}, err
	}
	s.CreatedAt = fromMillis(createdAt)
	s.ExpiresAt = fromMillis(expiresAt)
	return s, nil
}
