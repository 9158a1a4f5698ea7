package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Fardeen26/flashfeed/internal/domain"
	"github.com/Fardeen26/flashfeed/internal/repositories/follow"
	"github.com/Fardeen26/flashfeed/internal/repositories/story"
	"github.com/Fardeen26/flashfeed/internal/repositories/storyview"
	"github.com/Fardeen26/flashfeed/internal/repositories/user"
)

var baseTime = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir() + "/flashfeed.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedUsers(t *testing.T, store *Store, ids ...string) {
	t.Helper()
	for _, id := range ids {
		err := store.Users().Create(context.Background(), domain.User{
			ID:         id,
			ExternalID: "ext-" + id,
			Username:   id,
			FullName:   "User " + id,
			ImageURL:   "https://img/" + id,
			CreatedAt:  baseTime,
		})
		if err != nil {
			t.Fatalf("create user %s: %v", id, err)
		}
	}
}

func putStory(t *testing.T, store *Store, id, owner string, createdAt time.Time) domain.Story {
	t.Helper()
	s := domain.Story{
		ID:            id,
		OwnerID:       owner,
		ImageURL:      "https://cdn/" + id,
		StorageHandle: "h-" + id,
		CreatedAt:     createdAt,
		ExpiresAt:     createdAt.Add(domain.StoryTTL),
	}
	if err := store.Stories().Create(context.Background(), s); err != nil {
		t.Fatalf("create story %s: %v", id, err)
	}
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestStoryRoundTrip(t *testing.T) {
	store := openTestStore(t)
	seedUsers(t, store, "alice")
	want := putStory(t, store, "s1", "alice", baseTime)

	got, err := store.Stories().GetByID(context.Background(), "s1")
	if err != nil {
		t.Fatalf("get story: %v", err)
	}
	if got.ID != want.ID || got.OwnerID != want.OwnerID || got.ImageURL != want.ImageURL || got.StorageHandle != want.StorageHandle {
		t.Fatalf("story = %+v, want %+v", *got, want)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) || !got.ExpiresAt.Equal(want.ExpiresAt) {
		t.Fatalf("story times = %v/%v, want %v/%v", got.CreatedAt, got.ExpiresAt, want.CreatedAt, want.ExpiresAt)
	}

	_, err = store.Stories().GetByID(context.Background(), "missing")
	if !errors.Is(err, story.ErrNotFound) || !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get missing err = %v, want not found", err)
	}
}

func TestCreateStoryForUnknownOwner(t *testing.T) {
	store := openTestStore(t)
	err := store.Stories().Create(context.Background(), domain.NewStory("ghost", "u", "h", baseTime))
	if !errors.Is(err, story.ErrCannotCreate) {
		t.Fatalf("err = %v, want ErrCannotCreate", err)
	}
}

func TestGetActiveByOwnerFiltersExpired(t *testing.T) {
	store := openTestStore(t)
	seedUsers(t, store, "alice", "bob")
	ctx := context.Background()

	putStory(t, store, "old", "alice", baseTime.Add(-25*time.Hour))
	putStory(t, store, "edge", "alice", baseTime.Add(-24*time.Hour))
	putStory(t, store, "b", "alice", baseTime.Add(-time.Hour))
	putStory(t, store, "a", "alice", baseTime.Add(-2*time.Hour))
	putStory(t, store, "bob-1", "bob", baseTime.Add(-time.Minute))

	active, err := store.Stories().GetActiveByOwner(ctx, "alice", baseTime)
	if err != nil {
		t.Fatalf("active stories: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active len = %d, want 2", len(active))
	}
	if active[0].ID != "a" || active[1].ID != "b" {
		t.Fatalf("active order = [%s %s], want [a b]", active[0].ID, active[1].ID)
	}

	none, err := store.Stories().GetActiveByOwner(ctx, "alice", baseTime.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("active stories later: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("active len after expiry = %d, want 0", len(none))
	}
}

func TestMarkViewedIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	seedUsers(t, store, "alice", "bob")
	putStory(t, store, "s1", "alice", baseTime)
	ctx := context.Background()
	views := store.StoryViews()

	view := domain.StoryView{ViewerID: "bob", StoryID: "s1", ViewedAt: baseTime.Add(time.Minute)}
	if err := views.Create(ctx, view); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	view.ViewedAt = baseTime.Add(time.Hour)
	err := views.Create(ctx, view)
	if !errors.Is(err, storyview.ErrAlreadyExists) {
		t.Fatalf("second mark err = %v, want ErrAlreadyExists", err)
	}
	if !errors.Is(err, domain.ErrConcurrentDuplicateView) {
		t.Fatalf("second mark err = %v, want duplicate view sentinel", err)
	}

	ids, err := views.GetViewedStoryIDs(ctx, "bob")
	if err != nil {
		t.Fatalf("viewed ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != "s1" {
		t.Fatalf("viewed ids = %v, want [s1]", ids)
	}

	viewers, err := views.GetViewers(ctx, "s1", "alice")
	if err != nil {
		t.Fatalf("viewers: %v", err)
	}
	if len(viewers) != 1 || !viewers[0].ViewedAt.Equal(baseTime.Add(time.Minute)) {
		t.Fatalf("viewers = %+v, want first view timestamp kept", viewers)
	}
}

func TestConcurrentMarksStoreOneRow(t *testing.T) {
	store := openTestStore(t)
	seedUsers(t, store, "alice", "bob")
	putStory(t, store, "s1", "alice", baseTime)
	views := store.StoryViews()

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := views.Create(context.Background(), domain.StoryView{ViewerID: "bob", StoryID: "s1", ViewedAt: baseTime})
			switch {
			case err == nil:
				mu.Lock()
				created++
				mu.Unlock()
			case errors.Is(err, storyview.ErrAlreadyExists):
			default:
				t.Errorf("mark: %v", err)
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Fatalf("created = %d, want 1", created)
	}
}

func TestMarkViewedUnknownStory(t *testing.T) {
	store := openTestStore(t)
	seedUsers(t, store, "bob")

	err := store.StoryViews().Create(context.Background(), domain.StoryView{ViewerID: "bob", StoryID: "nope", ViewedAt: baseTime})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestGetViewersOrderedAndExcludesOwner(t *testing.T) {
	store := openTestStore(t)
	seedUsers(t, store, "alice", "bob", "carol", "dave")
	putStory(t, store, "s1", "alice", baseTime)
	ctx := context.Background()
	views := store.StoryViews()

	marks := []domain.StoryView{
		{ViewerID: "carol", StoryID: "s1", ViewedAt: baseTime.Add(3 * time.Minute)},
		{ViewerID: "alice", StoryID: "s1", ViewedAt: baseTime.Add(time.Minute)},
		{ViewerID: "bob", StoryID: "s1", ViewedAt: baseTime.Add(2 * time.Minute)},
	}
	for _, m := range marks {
		if err := views.Create(ctx, m); err != nil {
			t.Fatalf("mark %s: %v", m.ViewerID, err)
		}
	}

	viewers, err := views.GetViewers(ctx, "s1", "alice")
	if err != nil {
		t.Fatalf("viewers: %v", err)
	}
	if len(viewers) != 2 {
		t.Fatalf("viewers len = %d, want 2", len(viewers))
	}
	if viewers[0].UserID != "bob" || viewers[1].UserID != "carol" {
		t.Fatalf("viewers = [%s %s], want [bob carol]", viewers[0].UserID, viewers[1].UserID)
	}
	if viewers[0].FullName != "User bob" {
		t.Fatalf("viewer full name = %q", viewers[0].FullName)
	}
}

func TestFollowGraph(t *testing.T) {
	store := openTestStore(t)
	seedUsers(t, store, "alice", "bob", "carol")
	ctx := context.Background()
	follows := store.Follows()

	for _, e := range []domain.FollowEdge{
		{FollowerID: "alice", FollowingID: "carol", CreatedAt: baseTime},
		{FollowerID: "alice", FollowingID: "bob", CreatedAt: baseTime},
		{FollowerID: "carol", FollowingID: "bob", CreatedAt: baseTime},
	} {
		if err := follows.Create(ctx, e); err != nil {
			t.Fatalf("follow %s->%s: %v", e.FollowerID, e.FollowingID, err)
		}
	}

	followed, err := follows.GetFollowedIDs(ctx, "alice")
	if err != nil {
		t.Fatalf("followed: %v", err)
	}
	if len(followed) != 2 || followed[0] != "bob" || followed[1] != "carol" {
		t.Fatalf("followed = %v, want [bob carol]", followed)
	}

	followers, err := follows.GetFollowerIDs(ctx, "bob")
	if err != nil {
		t.Fatalf("followers: %v", err)
	}
	if len(followers) != 2 || followers[0] != "alice" || followers[1] != "carol" {
		t.Fatalf("followers = %v, want [alice carol]", followers)
	}

	dup := follows.Create(ctx, domain.FollowEdge{FollowerID: "alice", FollowingID: "bob", CreatedAt: baseTime})
	if !errors.Is(dup, follow.ErrAlreadyExists) {
		t.Fatalf("duplicate follow err = %v", dup)
	}
	self := follows.Create(ctx, domain.FollowEdge{FollowerID: "bob", FollowingID: "bob", CreatedAt: baseTime})
	if !errors.Is(self, domain.ErrInvalidInput) {
		t.Fatalf("self follow err = %v", self)
	}

	if err := follows.Delete(ctx, "alice", "bob"); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	if err := follows.Delete(ctx, "alice", "bob"); !errors.Is(err, follow.ErrNotFound) {
		t.Fatalf("second unfollow err = %v", err)
	}
}

func TestUserLookups(t *testing.T) {
	store := openTestStore(t)
	seedUsers(t, store, "alice")
	ctx := context.Background()
	users := store.Users()

	byExt, err := users.GetByExternalID(ctx, "ext-alice")
	if err != nil {
		t.Fatalf("by external id: %v", err)
	}
	if byExt.ID != "alice" || !byExt.CreatedAt.Equal(baseTime) {
		t.Fatalf("user = %+v", byExt)
	}

	err = users.Create(ctx, domain.User{ID: "other", ExternalID: "ext-alice", Username: "x", CreatedAt: baseTime})
	if !errors.Is(err, user.ErrAlreadyExists) {
		t.Fatalf("duplicate external id err = %v", err)
	}

	if _, err := users.GetByID(ctx, "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing user err = %v", err)
	}
}

func TestDeleteExpiredBeforeCascadesViews(t *testing.T) {
	store := openTestStore(t)
	seedUsers(t, store, "alice", "bob")
	ctx := context.Background()

	putStory(t, store, "gone", "alice", baseTime.Add(-73*time.Hour))
	putStory(t, store, "kept", "alice", baseTime.Add(-time.Hour))
	for _, id := range []string{"gone", "kept"} {
		if err := store.StoryViews().Create(ctx, domain.StoryView{ViewerID: "bob", StoryID: id, ViewedAt: baseTime}); err != nil {
			t.Fatalf("mark %s: %v", id, err)
		}
	}

	deleted, err := store.Stories().DeleteExpiredBefore(ctx, baseTime.Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted = %d, want 1", deleted)
	}

	ids, err := store.StoryViews().GetViewedStoryIDs(ctx, "bob")
	if err != nil {
		t.Fatalf("viewed ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != "kept" {
		t.Fatalf("viewed ids = %v, want [kept]", ids)
	}
}

func TestDeleteExpiredBeforeKeepsStoryExpiringAtCutoff(t *testing.T) {
	store := openTestStore(t)
	seedUsers(t, store, "alice")
	ctx := context.Background()
	cutoff := baseTime.Add(-48 * time.Hour)

	// Expires exactly at the cutoff, then one millisecond before it.
	putStory(t, store, "at-cutoff", "alice", cutoff.Add(-domain.StoryTTL))
	putStory(t, store, "before-cutoff", "alice", cutoff.Add(-domain.StoryTTL-time.Millisecond))

	deleted, err := store.Stories().DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted = %d, want 1", deleted)
	}
	if _, err := store.Stories().GetByID(ctx, "at-cutoff"); err != nil {
		t.Fatalf("story expiring at cutoff was removed: %v", err)
	}
	if _, err := store.Stories().GetByID(ctx, "before-cutoff"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("story expiring before cutoff err = %v, want not found", err)
	}
}
