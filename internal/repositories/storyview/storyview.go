package storyview

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fardeen26/flashfeed/internal/domain"
)

var (
	// ErrAlreadyExists is returned when the (viewer, story) mark is already stored.
	ErrAlreadyExists = fmt.Errorf("story view %w", domain.ErrConcurrentDuplicateView)
	ErrStoryNotFound = fmt.Errorf("viewed story %w", domain.ErrNotFound)
	ErrCannotCreate  = errors.New("error create story view")
)

//go:generate go run go.uber.org/mock/mockgen -source=storyview.go -destination=mocks/mock.go
type Repository interface {
	// Create inserts a view mark, relying on the (viewer_id, story_id) key for uniqueness.
	Create(ctx context.Context, view domain.StoryView) error

	// GetViewedStoryIDs returns every story id the viewer has marked, across all owners.
	GetViewedStoryIDs(ctx context.Context, viewerID string) ([]string, error)

	// GetViewers returns profiles of users who viewed the story, oldest view first,
	// leaving out excludeUserID.
	GetViewers(ctx context.Context, storyID string, excludeUserID string) ([]domain.Viewer, error)
}
