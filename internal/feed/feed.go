package feed

import (
	"context"
	"time"

	"github.com/Fardeen26/flashfeed/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=feed.go -destination=mocks/mock.go

// Client is the story feed surface. Every call acts on behalf of the
// caller bound to ctx and fails with domain.ErrAuthenticationRequired
// before any I/O when there is none.
type Client interface {
	CreateStory(ctx context.Context, storageHandle string) (string, error)
	BuildFeed(ctx context.Context, now time.Time) ([]domain.StoryGroup, error)
	BuildOwnFeed(ctx context.Context, now time.Time) (domain.StoryGroup, error)
	MarkViewed(ctx context.Context, storyID string) error
	GetStoryViewers(ctx context.Context, storyID string) ([]domain.Viewer, error)

	// ProvisionUser returns the user for the verified principal in ctx,
	// creating it on first sight.
	ProvisionUser(ctx context.Context) (*domain.User, error)
	Follow(ctx context.Context, followingID string) error
	Unfollow(ctx context.Context, followingID string) error
}
