package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Fardeen26/flashfeed/internal/repositories/repotest"
	"github.com/Fardeen26/flashfeed/pkg/logger"
)

var baseTime = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

func TestPgxUserLookups(t *testing.T) {
	repo := NewPgxRepository(repotest.Postgres(t), logger.NewNop())
	ctx := context.Background()
	want := repotest.User("alice", baseTime)
	if err := repo.Create(ctx, want); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byID, err := repo.GetByID(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.ExternalID != want.ExternalID || byID.FullName != want.FullName || !byID.CreatedAt.Equal(baseTime) {
		t.Fatalf("user = %+v, want %+v", byID, want)
	}

	byExt, err := repo.GetByExternalID(ctx, "ext-alice")
	if err != nil {
		t.Fatalf("GetByExternalID: %v", err)
	}
	if byExt.ID != "alice" {
		t.Fatalf("id = %q, want alice", byExt.ID)
	}

	if _, err := repo.GetByID(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByID(ghost) err = %v, want ErrNotFound", err)
	}
	if _, err := repo.GetByExternalID(ctx, "ext-ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByExternalID(ghost) err = %v, want ErrNotFound", err)
	}
}

func TestPgxDuplicateExternalID(t *testing.T) {
	repo := NewPgxRepository(repotest.Postgres(t), logger.NewNop())
	ctx := context.Background()
	if err := repo.Create(ctx, repotest.User("alice", baseTime)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := repotest.User("alice2", baseTime)
	dup.ExternalID = "ext-alice"
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("duplicate err = %v, want ErrAlreadyExists", err)
	}
}
