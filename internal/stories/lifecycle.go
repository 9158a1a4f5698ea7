// Package stories holds the story feed core: creation with a fixed expiry,
// idempotent view tracking, and aggregation into per-owner carousel groups.
package stories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Fardeen26/flashfeed/internal/blob"
	"github.com/Fardeen26/flashfeed/internal/domain"
	"github.com/Fardeen26/flashfeed/internal/repositories/story"
	apperrors "github.com/Fardeen26/flashfeed/pkg/errors"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

const tracerName = "github.com/Fardeen26/flashfeed/internal/stories"

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

type LifecycleOpts struct {
	fx.In

	Stories story.Repository
	Blob    blob.Resolver
	Clock   clockwork.Clock
	Logger  logger.Logger
}

// Lifecycle creates stories. It never updates them; expiry is purely a
// function of ExpiresAt.
type Lifecycle struct {
	stories story.Repository
	blob    blob.Resolver
	clock   clockwork.Clock
	log     logger.Logger
}

func NewLifecycle(opts LifecycleOpts) *Lifecycle {
	return &Lifecycle{
		stories: opts.Stories,
		blob:    opts.Blob,
		clock:   opts.Clock,
		log:     opts.Logger.WithComponent("StoryLifecycle"),
	}
}

// CreateStory resolves the handle and stores a story expiring StoryTTL after now.
// Resolution failures match domain.ErrStorageResolution and store nothing.
func (l *Lifecycle) CreateStory(ctx context.Context, ownerID, storageHandle string) (_ string, err error) {
	ctx, span := tracer().Start(ctx, "stories.CreateStory", trace.WithAttributes(
		attribute.String("owner.id", ownerID),
	))
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(ownerID) == "" {
		return "", apperrors.WrapWithCode(domain.ErrInvalidInput, apperrors.CodeInvalidInput, "owner id is required")
	}

	imageURL, err := l.blob.ResolveURL(ctx, storageHandle)
	if err != nil {
		if !errors.Is(err, domain.ErrStorageResolution) {
			err = apperrors.WrapWithCode(
				fmt.Errorf("%w: %w", domain.ErrStorageResolution, err),
				apperrors.CodeStorageResolution,
				"resolve storage handle",
			)
		}
		l.log.Warn("Storage handle did not resolve", "owner_id", ownerID, "handle", storageHandle, "error", err)
		return "", err
	}

	s := domain.NewStory(ownerID, imageURL, storageHandle, l.clock.Now())
	if err := l.stories.Create(ctx, s); err != nil {
		return "", fmt.Errorf("failed to store story: %w", err)
	}

	l.log.Info("Story created", "story_id", s.ID, "owner_id", ownerID, "expires_at", s.ExpiresAt)
	return s.ID, nil
}

// IsExpired reports whether s is gone at now.
func (l *Lifecycle) IsExpired(s domain.Story, now time.Time) bool {
	return s.IsExpired(now)
}
