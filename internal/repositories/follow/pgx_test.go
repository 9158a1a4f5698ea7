package follow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Fardeen26/flashfeed/internal/domain"
	"github.com/Fardeen26/flashfeed/internal/repositories/repotest"
	"github.com/Fardeen26/flashfeed/internal/repositories/user"
	"github.com/Fardeen26/flashfeed/pkg/logger"
)

var baseTime = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

func newPgxRepo(t *testing.T, userIDs ...string) *PgxRepository {
	t.Helper()
	pool := repotest.Postgres(t)
	users := user.NewPgxRepository(pool, logger.NewNop())
	for _, id := range userIDs {
		if err := users.Create(context.Background(), repotest.User(id, baseTime)); err != nil {
			t.Fatalf("create user %s: %v", id, err)
		}
	}
	return NewPgxRepository(pool, logger.NewNop())
}

func edge(follower, following string) domain.FollowEdge {
	return domain.FollowEdge{FollowerID: follower, FollowingID: following, CreatedAt: baseTime}
}

func TestPgxFollowGraph(t *testing.T) {
	repo := newPgxRepo(t, "alice", "bob", "carol")
	ctx := context.Background()
	for _, e := range []domain.FollowEdge{edge("alice", "carol"), edge("alice", "bob"), edge("bob", "carol")} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create %s->%s: %v", e.FollowerID, e.FollowingID, err)
		}
	}

	followed, err := repo.GetFollowedIDs(ctx, "alice")
	if err != nil {
		t.Fatalf("GetFollowedIDs: %v", err)
	}
	if len(followed) != 2 || followed[0] != "bob" || followed[1] != "carol" {
		t.Fatalf("followed = %v, want [bob carol]", followed)
	}

	followers, err := repo.GetFollowerIDs(ctx, "carol")
	if err != nil {
		t.Fatalf("GetFollowerIDs: %v", err)
	}
	if len(followers) != 2 || followers[0] != "alice" || followers[1] != "bob" {
		t.Fatalf("followers = %v, want [alice bob]", followers)
	}

	if err := repo.Delete(ctx, "alice", "bob"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	followed, err = repo.GetFollowedIDs(ctx, "alice")
	if err != nil || len(followed) != 1 || followed[0] != "carol" {
		t.Fatalf("followed after delete = %v, err = %v, want [carol]", followed, err)
	}
}

func TestPgxFollowErrors(t *testing.T) {
	repo := newPgxRepo(t, "alice", "bob")
	ctx := context.Background()

	if err := repo.Create(ctx, edge("alice", "bob")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, edge("alice", "bob")); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("duplicate err = %v, want ErrAlreadyExists", err)
	}
	if err := repo.Create(ctx, edge("alice", "alice")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("self err = %v, want ErrInvalidInput", err)
	}
	if err := repo.Create(ctx, edge("alice", "ghost")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown user err = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, "bob", "alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing edge err = %v, want ErrNotFound", err)
	}
}
