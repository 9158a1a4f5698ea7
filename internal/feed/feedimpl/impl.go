package feedimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Fardeen26/flashfeed/internal/domain"
	"github.com/Fardeen26/flashfeed/internal/feed"
	"github.com/Fardeen26/flashfeed/internal/identity"
	"github.com/Fardeen26/flashfeed/internal/realtime"
	"github.com/Fardeen26/flashfeed/internal/repositories/follow"
	"github.com/Fardeen26/flashfeed/internal/repositories/story"
	"github.com/Fardeen26/flashfeed/internal/repositories/storyview"
	"github.com/Fardeen26/flashfeed/internal/repositories/user"
	"github.com/Fardeen26/flashfeed/internal/stories"
	apperrors "github.com/Fardeen26/flashfeed/pkg/errors"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Identity   identity.Resolver
	Lifecycle  *stories.Lifecycle
	Ledger     *stories.Ledger
	Aggregator *stories.Aggregator
	StoryRepo  story.Repository
	ViewRepo   storyview.Repository
	FollowRepo follow.Repository
	UserRepo   user.Repository
	Hub        *realtime.Hub
	Clock      clockwork.Clock
	Logger     logger.Logger
}

type FeedImpl struct {
	Identity   identity.Resolver
	Lifecycle  *stories.Lifecycle
	Ledger     *stories.Ledger
	Aggregator *stories.Aggregator
	StoryRepo  story.Repository
	ViewRepo   storyview.Repository
	FollowRepo follow.Repository
	UserRepo   user.Repository
	Hub        *realtime.Hub
	Clock      clockwork.Clock
	Logger     logger.Logger
}

func New(opts Opts) *FeedImpl {
	return &FeedImpl{
		Identity:   opts.Identity,
		Lifecycle:  opts.Lifecycle,
		Ledger:     opts.Ledger,
		Aggregator: opts.Aggregator,
		StoryRepo:  opts.StoryRepo,
		ViewRepo:   opts.ViewRepo,
		FollowRepo: opts.FollowRepo,
		UserRepo:   opts.UserRepo,
		Hub:        opts.Hub,
		Clock:      opts.Clock,
		Logger:     opts.Logger.WithComponent("FeedClient"),
	}
}

var _ feed.Client = (*FeedImpl)(nil)

func (f *FeedImpl) CreateStory(ctx context.Context, storageHandle string) (string, error) {
	ownerID, err := f.Identity.Resolve(ctx)
	if err != nil {
		return "", err
	}

	id, err := f.Lifecycle.CreateStory(ctx, ownerID, storageHandle)
	if err != nil {
		return "", err
	}

	f.notifyFollowers(ctx, ownerID)
	return id, nil
}

// notifyFollowers invalidates the owner's own feed and every follower's feed.
func (f *FeedImpl) notifyFollowers(ctx context.Context, ownerID string) {
	followers, err := f.FollowRepo.GetFollowerIDs(ctx, ownerID)
	if err != nil {
		f.Logger.Warn("Failed to load followers for notification", "owner_id", ownerID, "error", err)
	}
	f.Hub.Notify(append(followers, ownerID)...)
}

func (f *FeedImpl) BuildFeed(ctx context.Context, now time.Time) ([]domain.StoryGroup, error) {
	viewerID, err := f.Identity.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return f.Aggregator.BuildFeed(ctx, viewerID, now)
}

func (f *FeedImpl) BuildOwnFeed(ctx context.Context, now time.Time) (domain.StoryGroup, error) {
	viewerID, err := f.Identity.Resolve(ctx)
	if err != nil {
		return domain.StoryGroup{}, err
	}
	return f.Aggregator.BuildOwnFeed(ctx, viewerID, now)
}

func (f *FeedImpl) MarkViewed(ctx context.Context, storyID string) error {
	viewerID, err := f.Identity.Resolve(ctx)
	if err != nil {
		return err
	}

	s, err := f.loadStory(ctx, storyID)
	if err != nil {
		return err
	}

	if err := f.Ledger.MarkViewed(ctx, viewerID, s.ID); err != nil {
		return err
	}

	f.Hub.Notify(viewerID, s.OwnerID)
	return nil
}

// GetStoryViewers lists who saw a story. Only its owner may ask.
func (f *FeedImpl) GetStoryViewers(ctx context.Context, storyID string) ([]domain.Viewer, error) {
	viewerID, err := f.Identity.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	s, err := f.loadStory(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if s.OwnerID != viewerID {
		return nil, apperrors.WrapWithCode(domain.ErrForbidden, apperrors.CodeForbidden, "only the story owner can list viewers")
	}

	viewers, err := f.ViewRepo.GetViewers(ctx, s.ID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load story viewers: %w", err)
	}
	if viewers == nil {
		viewers = []domain.Viewer{}
	}
	return viewers, nil
}

func (f *FeedImpl) loadStory(ctx context.Context, storyID string) (*domain.Story, error) {
	if strings.TrimSpace(storyID) == "" {
		return nil, apperrors.WrapWithCode(domain.ErrInvalidInput, apperrors.CodeInvalidInput, "story id is required")
	}
	s, err := f.StoryRepo.GetByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperrors.WrapWithCode(err, apperrors.CodeNotFound, "story not found")
		}
		return nil, fmt.Errorf("failed to load story: %w", err)
	}
	return s, nil
}
