package follow

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fardeen26/flashfeed/internal/domain"
)

var (
	ErrAlreadyExists = errors.New("follow edge already exists")
	ErrNotFound      = fmt.Errorf("follow edge %w", domain.ErrNotFound)
)

//go:generate go run go.uber.org/mock/mockgen -source=follow.go -destination=mocks/mock.go

// Reader is the read side of the follow graph used by feed aggregation.
type Reader interface {
	// GetFollowedIDs returns ids of users that followerID follows.
	GetFollowedIDs(ctx context.Context, followerID string) ([]string, error)
	// GetFollowerIDs returns ids of users following followingID.
	GetFollowerIDs(ctx context.Context, followingID string) ([]string, error)
}

type Repository interface {
	Reader
	Create(ctx context.Context, edge domain.FollowEdge) error
	Delete(ctx context.Context, followerID, followingID string) error
}
