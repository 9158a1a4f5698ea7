package stories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Fardeen26/flashfeed/internal/domain"
	mock_blob "github.com/Fardeen26/flashfeed/internal/blob/mocks"
	"github.com/Fardeen26/flashfeed/internal/storage/sqlite"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/mock/gomock"
)

type world struct {
	store      *sqlite.Store
	blob       *mock_blob.MockResolver
	clock      *clockwork.FakeClock
	lifecycle  *Lifecycle
	ledger     *Ledger
	aggregator *Aggregator
}

func newWorld(t *testing.T) *world {
	t.Helper()
	store, err := sqlite.Open(t.TempDir() + "/stories.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	pool, err := ants.NewPool(2)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(pool.Release)

	w := &world{
		store: store,
		blob:  mock_blob.NewMockResolver(gomock.NewController(t)),
		clock: clockwork.NewFakeClockAt(epoch),
	}
	log := logger.NewNop()
	w.lifecycle = NewLifecycle(LifecycleOpts{Stories: store.Stories(), Blob: w.blob, Clock: w.clock, Logger: log})
	w.ledger = NewLedger(LedgerOpts{Views: store.StoryViews(), Stories: store.Stories(), Clock: w.clock, Logger: log})
	w.aggregator = NewAggregator(AggregatorOpts{
		Follows: store.Follows(),
		Stories: store.Stories(),
		Users:   store.Users(),
		Ledger:  w.ledger,
		Pool:    pool,
		Logger:  log,
	})

	ctx := context.Background()
	for _, id := range []string{"owner-a", "viewer"} {
		if err := store.Users().Create(ctx, domain.User{ID: id, ExternalID: "ext-" + id, Username: id, CreatedAt: epoch}); err != nil {
			t.Fatalf("user %s: %v", id, err)
		}
	}
	if err := store.Follows().Create(ctx, domain.FollowEdge{FollowerID: "viewer", FollowingID: "owner-a", CreatedAt: epoch}); err != nil {
		t.Fatalf("follow: %v", err)
	}
	return w
}

func (w *world) post(t *testing.T, handle string) string {
	t.Helper()
	w.blob.EXPECT().ResolveURL(gomock.Any(), handle).Return("https://cdn/"+handle, nil)
	id, err := w.lifecycle.CreateStory(context.Background(), "owner-a", handle)
	if err != nil {
		t.Fatalf("create story: %v", err)
	}
	return id
}

func TestScenarioExpiredStoryIsFiltered(t *testing.T) {
	w := newWorld(t)
	w.post(t, "h0")

	at := func(ms int64) []domain.StoryGroup {
		groups, err := w.aggregator.BuildFeed(context.Background(), "viewer", time.UnixMilli(ms))
		if err != nil {
			t.Fatalf("build feed at %d: %v", ms, err)
		}
		return groups
	}

	if got := at(86_399_999); len(got) != 1 {
		t.Fatalf("groups one millisecond before expiry = %d, want 1", len(got))
	}
	if got := at(86_400_000); len(got) != 0 {
		t.Fatalf("groups at expiry = %d, want 0", len(got))
	}
	if got := at(86_400_001); len(got) != 0 {
		t.Fatalf("groups after expiry = %d, want 0", len(got))
	}
}

func TestScenarioPartiallyViewedGroup(t *testing.T) {
	w := newWorld(t)
	first := w.post(t, "h0")
	w.clock.Advance(10 * time.Millisecond)
	w.post(t, "h1")

	if err := w.ledger.MarkViewed(context.Background(), "viewer", first); err != nil {
		t.Fatalf("mark viewed: %v", err)
	}

	groups, err := w.aggregator.BuildFeed(context.Background(), "viewer", time.UnixMilli(20))
	if err != nil {
		t.Fatalf("build feed: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	g := groups[0]
	if g.HasViewedAll {
		t.Fatal("HasViewedAll = true with one story unviewed")
	}
	if len(g.Stories) != 2 || g.Stories[0].ID != first {
		t.Fatalf("stories = %+v, want creation order", g.Stories)
	}
}

func TestScenarioMarkViewedTwiceKeepsOneRecord(t *testing.T) {
	w := newWorld(t)
	id := w.post(t, "h0")

	for i := 0; i < 2; i++ {
		if err := w.ledger.MarkViewed(context.Background(), "viewer", id); err != nil {
			t.Fatalf("mark %d: %v", i, err)
		}
	}
	ids, err := w.store.StoryViews().GetViewedStoryIDs(context.Background(), "viewer")
	if err != nil {
		t.Fatalf("viewed ids: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("view records = %d, want 1", len(ids))
	}

	ok, err := w.ledger.HasViewedAllFor(context.Background(), "viewer", "owner-a", time.UnixMilli(1))
	if err != nil || !ok {
		t.Fatalf("HasViewedAllFor = %v, %v", ok, err)
	}
}

func TestScenarioUnresolvedHandleStoresNothing(t *testing.T) {
	w := newWorld(t)
	w.blob.EXPECT().ResolveURL(gomock.Any(), "broken").
		Return("", errors.Join(domain.ErrStorageResolution, errors.New("404")))

	if _, err := w.lifecycle.CreateStory(context.Background(), "owner-a", "broken"); !errors.Is(err, domain.ErrStorageResolution) {
		t.Fatalf("err = %v, want ErrStorageResolution", err)
	}

	active, err := w.store.Stories().GetActiveByOwner(context.Background(), "owner-a", epoch)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("stories after failed create = %d, want 0", len(active))
	}
}
