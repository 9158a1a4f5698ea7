package stories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Fardeen26/flashfeed/internal/domain"
	"github.com/Fardeen26/flashfeed/internal/repositories/story"
	"github.com/Fardeen26/flashfeed/internal/repositories/storyview"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
)

type LedgerOpts struct {
	fx.In

	Views   storyview.Repository
	Stories story.Repository
	Clock   clockwork.Clock
	Logger  logger.Logger
}

// Ledger records which stories a viewer has seen.
type Ledger struct {
	views   storyview.Repository
	stories story.Repository
	clock   clockwork.Clock
	log     logger.Logger
}

func NewLedger(opts LedgerOpts) *Ledger {
	return &Ledger{
		views:   opts.Views,
		stories: opts.Stories,
		clock:   opts.Clock,
		log:     opts.Logger.WithComponent("ViewLedger"),
	}
}

// MarkViewed records that viewerID saw storyID. Repeated and racing calls
// leave exactly one mark and all return nil.
func (l *Ledger) MarkViewed(ctx context.Context, viewerID, storyID string) error {
	err := l.views.Create(ctx, domain.StoryView{
		ViewerID: viewerID,
		StoryID:  storyID,
		ViewedAt: l.clock.Now(),
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrConcurrentDuplicateView):
		l.log.Debug("View already recorded", "viewer_id", viewerID, "story_id", storyID)
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return err
	default:
		return fmt.Errorf("failed to mark story viewed: %w", err)
	}
}

// ViewedStoryIDs returns the viewer's viewed-set across all owners.
func (l *Ledger) ViewedStoryIDs(ctx context.Context, viewerID string) (map[string]struct{}, error) {
	ids, err := l.views.GetViewedStoryIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load viewed stories: %w", err)
	}
	viewed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		viewed[id] = struct{}{}
	}
	return viewed, nil
}

// HasViewedAllFor reports whether the viewer saw every active story of
// ownerID. An owner with no active stories is vacuously fully viewed.
func (l *Ledger) HasViewedAllFor(ctx context.Context, viewerID, ownerID string, now time.Time) (bool, error) {
	active, err := l.stories.GetActiveByOwner(ctx, ownerID, now)
	if err != nil {
		return false, fmt.Errorf("failed to load active stories: %w", err)
	}
	if len(active) == 0 {
		return true, nil
	}
	viewed, err := l.ViewedStoryIDs(ctx, viewerID)
	if err != nil {
		return false, err
	}
	return allViewed(active, viewed), nil
}

func allViewed(stories []domain.Story, viewed map[string]struct{}) bool {
	for _, s := range stories {
		if _, ok := viewed[s.ID]; !ok {
			return false
		}
	}
	return true
}
