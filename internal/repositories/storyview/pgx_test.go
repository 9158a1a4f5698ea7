package storyview

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Fardeen26/flashfeed/internal/domain"
	"github.com/Fardeen26/flashfeed/internal/repositories/repotest"
	"github.com/Fardeen26/flashfeed/internal/repositories/story"
	"github.com/Fardeen26/flashfeed/internal/repositories/user"
	"github.com/Fardeen26/flashfeed/pkg/logger"
)

var baseTime = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

// newPgxRepo seeds users and one story per entry of stories (story id -> owner id).
func newPgxRepo(t *testing.T, userIDs []string, stories map[string]string) *Pgx {
	t.Helper()
	ctx := context.Background()
	pool := repotest.Postgres(t)

	users := user.NewPgxRepository(pool, logger.NewNop())
	for _, id := range userIDs {
		if err := users.Create(ctx, repotest.User(id, baseTime)); err != nil {
			t.Fatalf("create user %s: %v", id, err)
		}
	}

	storyRepo := story.NewPgx(pool, logger.NewNop())
	for id, owner := range stories {
		err := storyRepo.Create(ctx, domain.Story{
			ID:            id,
			OwnerID:       owner,
			ImageURL:      "https://cdn/" + id,
			StorageHandle: "h-" + id,
			CreatedAt:     baseTime,
			ExpiresAt:     baseTime.Add(domain.StoryTTL),
		})
		if err != nil {
			t.Fatalf("create story %s: %v", id, err)
		}
	}

	return NewPgx(pool, logger.NewNop())
}

func TestPgxCreateIsIdempotent(t *testing.T) {
	repo := newPgxRepo(t, []string{"alice", "bob"}, map[string]string{"s1": "alice"})
	ctx := context.Background()
	view := domain.StoryView{ViewerID: "bob", StoryID: "s1", ViewedAt: baseTime}

	if err := repo.Create(ctx, view); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	view.ViewedAt = baseTime.Add(time.Minute)
	err := repo.Create(ctx, view)
	if !errors.Is(err, ErrAlreadyExists) || !errors.Is(err, domain.ErrConcurrentDuplicateView) {
		t.Fatalf("second Create err = %v, want ErrAlreadyExists", err)
	}

	viewers, err := repo.GetViewers(ctx, "s1", "alice")
	if err != nil {
		t.Fatalf("GetViewers: %v", err)
	}
	if len(viewers) != 1 || !viewers[0].ViewedAt.Equal(baseTime) {
		t.Fatalf("viewers = %+v, want one row with the first viewed_at", viewers)
	}
}

func TestPgxCreateForUnknownStory(t *testing.T) {
	repo := newPgxRepo(t, []string{"bob"}, nil)
	err := repo.Create(context.Background(), domain.StoryView{ViewerID: "bob", StoryID: "missing", ViewedAt: baseTime})
	if !errors.Is(err, ErrStoryNotFound) || !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrStoryNotFound", err)
	}
}

func TestPgxConcurrentCreateStoresOneRow(t *testing.T) {
	repo := newPgxRepo(t, []string{"alice", "bob"}, map[string]string{"s1": "alice"})
	ctx := context.Background()

	const workers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, dups int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(ctx, domain.StoryView{ViewerID: "bob", StoryID: "s1", ViewedAt: baseTime})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrAlreadyExists):
				dups++
			default:
				t.Errorf("Create: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || dups != workers-1 {
		t.Fatalf("ok = %d, dups = %d, want 1 and %d", ok, dups, workers-1)
	}
}

func TestPgxGetViewersOrderedAndExcludesOwner(t *testing.T) {
	repo := newPgxRepo(t, []string{"alice", "bob", "carol", "dave"}, map[string]string{"s1": "alice"})
	ctx := context.Background()
	marks := []domain.StoryView{
		{ViewerID: "carol", StoryID: "s1", ViewedAt: baseTime.Add(2 * time.Minute)},
		{ViewerID: "alice", StoryID: "s1", ViewedAt: baseTime},
		{ViewerID: "dave", StoryID: "s1", ViewedAt: baseTime.Add(time.Minute)},
		{ViewerID: "bob", StoryID: "s1", ViewedAt: baseTime.Add(time.Minute)},
	}
	for _, m := range marks {
		if err := repo.Create(ctx, m); err != nil {
			t.Fatalf("Create %s: %v", m.ViewerID, err)
		}
	}

	viewers, err := repo.GetViewers(ctx, "s1", "alice")
	if err != nil {
		t.Fatalf("GetViewers: %v", err)
	}
	var got []string
	for _, v := range viewers {
		got = append(got, v.UserID)
	}
	want := []string{"bob", "dave", "carol"}
	if len(got) != len(want) {
		t.Fatalf("viewers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("viewers = %v, want %v", got, want)
		}
	}
	if viewers[0].FullName != "User bob" || viewers[0].ImageURL != "https://img/bob" {
		t.Fatalf("profile = %+v, want joined user columns", viewers[0])
	}
}

func TestPgxGetViewedStoryIDsSpansOwners(t *testing.T) {
	repo := newPgxRepo(t, []string{"alice", "bob", "carol"}, map[string]string{"a1": "alice", "c1": "carol", "c2": "carol"})
	ctx := context.Background()
	for _, id := range []string{"a1", "c2"} {
		if err := repo.Create(ctx, domain.StoryView{ViewerID: "bob", StoryID: id, ViewedAt: baseTime}); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}

	ids, err := repo.GetViewedStoryIDs(ctx, "bob")
	if err != nil {
		t.Fatalf("GetViewedStoryIDs: %v", err)
	}
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "a1" || ids[1] != "c2" {
		t.Fatalf("ids = %v, want [a1 c2]", ids)
	}

	ids, err = repo.GetViewedStoryIDs(ctx, "carol")
	if err != nil || len(ids) != 0 {
		t.Fatalf("carol ids = %v, err = %v, want none", ids, err)
	}
}
