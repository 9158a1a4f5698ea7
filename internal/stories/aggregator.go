package stories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Fardeen26/flashfeed/internal/domain"
	"github.com/Fardeen26/flashfeed/internal/identity"
	"github.com/Fardeen26/flashfeed/internal/repositories/follow"
	"github.com/Fardeen26/flashfeed/internal/repositories/story"
	"github.com/Fardeen26/flashfeed/internal/repositories/user"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

type AggregatorOpts struct {
	fx.In

	Follows follow.Reader
	Stories story.Repository
	Users   user.Repository
	Ledger  *Ledger
	Pool    *ants.Pool
	Logger  logger.Logger
}

// Aggregator builds the per-viewer carousel.
type Aggregator struct {
	follows follow.Reader
	stories story.Repository
	users   user.Repository
	ledger  *Ledger
	pool    *ants.Pool
	log     logger.Logger
}

func NewAggregator(opts AggregatorOpts) *Aggregator {
	return &Aggregator{
		follows: opts.Follows,
		stories: opts.Stories,
		users:   opts.Users,
		ledger:  opts.Ledger,
		pool:    opts.Pool,
		log:     opts.Logger.WithComponent("StoryAggregator"),
	}
}

type ownerResult struct {
	owner   domain.StoryOwner
	stories []domain.Story
	err     error
}

// BuildFeed returns one group per followed owner with at least one active
// story at now, newest group first.
func (a *Aggregator) BuildFeed(ctx context.Context, viewerID string, now time.Time) (_ []domain.StoryGroup, err error) {
	ctx, span := tracer().Start(ctx, "stories.BuildFeed", trace.WithAttributes(
		attribute.String("viewer.id", viewerID),
	))
	defer func() { endSpan(span, err) }()

	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}

	followed, err := a.follows.GetFollowedIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load follow graph: %w", err)
	}
	followed = uniqueIDs(followed)
	span.SetAttributes(attribute.Int("feed.followed", len(followed)))
	if len(followed) == 0 {
		return []domain.StoryGroup{}, nil
	}

	results := a.fetchOwners(ctx, followed, now)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var withStories []ownerResult
	for i, r := range results {
		if r.err != nil {
			return nil, fmt.Errorf("failed to load stories of %s: %w", followed[i], r.err)
		}
		if len(r.stories) > 0 {
			withStories = append(withStories, r)
		}
	}
	if len(withStories) == 0 {
		return []domain.StoryGroup{}, nil
	}

	viewed, err := a.ledger.ViewedStoryIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	groups := make([]domain.StoryGroup, 0, len(withStories))
	for _, r := range withStories {
		groups = append(groups, domain.StoryGroup{
			Owner:        r.owner,
			Stories:      r.stories,
			HasViewedAll: allViewed(r.stories, viewed),
		})
	}
	domain.SortGroupsByRecency(groups)

	span.SetAttributes(attribute.Int("feed.groups", len(groups)))
	a.log.Debug("Feed built", "viewer_id", viewerID, "followed", len(followed), "groups", len(groups))
	return groups, nil
}

// fetchOwners loads each owner's active stories and profile on the shared
// pool. Results are indexed by input position.
func (a *Aggregator) fetchOwners(ctx context.Context, ownerIDs []string, now time.Time) []ownerResult {
	results := make([]ownerResult, len(ownerIDs))
	var wg sync.WaitGroup

	for i, ownerID := range ownerIDs {
		wg.Add(1)
		idx, id := i, ownerID

		err := a.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				results[idx].err = err
				return
			}
			results[idx] = a.fetchOwner(ctx, id, now)
		})
		if err != nil {
			wg.Done()
			a.log.Error("Failed to submit owner fetch to pool", "owner_id", id, "error", err)
			results[idx].err = fmt.Errorf("failed to submit owner fetch: %w", err)
		}
	}

	wg.Wait()
	return results
}

func (a *Aggregator) fetchOwner(ctx context.Context, ownerID string, now time.Time) ownerResult {
	active, err := a.stories.GetActiveByOwner(ctx, ownerID, now)
	if err != nil {
		return ownerResult{err: err}
	}
	if len(active) == 0 {
		return ownerResult{}
	}

	u, err := a.users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			a.log.Warn("Dropping stories of missing owner", "owner_id", ownerID)
			return ownerResult{}
		}
		return ownerResult{err: err}
	}

	domain.SortStoriesByCreation(active)
	return ownerResult{owner: u.Owner(), stories: active}
}

// BuildOwnFeed returns the viewer's own group. With no active stories the
// group is empty and HasViewedAll is false.
func (a *Aggregator) BuildOwnFeed(ctx context.Context, viewerID string, now time.Time) (_ domain.StoryGroup, err error) {
	ctx, span := tracer().Start(ctx, "stories.BuildOwnFeed", trace.WithAttributes(
		attribute.String("viewer.id", viewerID),
	))
	defer func() { endSpan(span, err) }()

	if err := requireViewer(viewerID); err != nil {
		return domain.StoryGroup{}, err
	}

	u, err := a.users.GetByID(ctx, viewerID)
	if err != nil {
		return domain.StoryGroup{}, fmt.Errorf("failed to load own profile: %w", err)
	}

	active, err := a.stories.GetActiveByOwner(ctx, viewerID, now)
	if err != nil {
		return domain.StoryGroup{}, fmt.Errorf("failed to load own stories: %w", err)
	}
	if len(active) == 0 {
		return domain.StoryGroup{Owner: u.Owner()}, nil
	}
	domain.SortStoriesByCreation(active)

	viewed, err := a.ledger.ViewedStoryIDs(ctx, viewerID)
	if err != nil {
		return domain.StoryGroup{}, err
	}

	return domain.StoryGroup{
		Owner:        u.Owner(),
		Stories:      active,
		HasViewedAll: allViewed(active, viewed),
	}, nil
}

func requireViewer(viewerID string) error {
	if strings.TrimSpace(viewerID) == "" {
		return identity.ErrUnauthenticated("no viewer for feed build")
	}
	return nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
