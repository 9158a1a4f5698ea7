package story

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Fardeen26/flashfeed/internal/domain"
)

var ErrNotFound = fmt.Errorf("story %w", domain.ErrNotFound)
var ErrCannotCreate = errors.New("error create story")

//go:generate go run go.uber.org/mock/mockgen -source=story.go -destination=mocks/mock.go

type Repository interface {
	Create(ctx context.Context, story domain.Story) error
	GetByID(ctx context.Context, id string) (*domain.Story, error)
	// GetActiveByOwner returns the owner's stories with expires_at > now, oldest first.
	GetActiveByOwner(ctx context.Context, ownerID string, now time.Time) ([]domain.Story, error)
	// DeleteExpiredBefore physically removes stories that expired before cutoff.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
