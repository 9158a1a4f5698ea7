package feedimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Fardeen26/flashfeed/internal/domain"
	"github.com/Fardeen26/flashfeed/internal/identity"
	"github.com/Fardeen26/flashfeed/internal/repositories/follow"
	"github.com/Fardeen26/flashfeed/internal/repositories/user"
	apperrors "github.com/Fardeen26/flashfeed/pkg/errors"
	"github.com/google/uuid"
)

func (f *FeedImpl) ProvisionUser(ctx context.Context) (*domain.User, error) {
	p, ok := identity.PrincipalFrom(ctx)
	if !ok {
		return nil, identity.ErrUnauthenticated("no verified principal in request context")
	}

	existing, err := f.UserRepo.GetByExternalID(ctx, p.Subject)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	username := strings.TrimSpace(p.Username)
	if username == "" {
		username = p.Subject
	}
	u := domain.User{
		ID:         uuid.NewString(),
		ExternalID: p.Subject,
		Username:   username,
		FullName:   p.FullName,
		ImageURL:   p.ImageURL,
		CreatedAt:  f.Clock.Now(),
	}

	if err := f.UserRepo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrAlreadyExists) {
			// Lost a race with a concurrent first request.
			return f.UserRepo.GetByExternalID(ctx, p.Subject)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	f.Logger.Info("User provisioned", "user_id", u.ID, "username", u.Username)
	return &u, nil
}

func (f *FeedImpl) Follow(ctx context.Context, followingID string) error {
	followerID, err := f.Identity.Resolve(ctx)
	if err != nil {
		return err
	}
	if followingID == followerID || strings.TrimSpace(followingID) == "" {
		return apperrors.WrapWithCode(domain.ErrInvalidInput, apperrors.CodeInvalidInput, "invalid user to follow")
	}

	if _, err := f.UserRepo.GetByID(ctx, followingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperrors.WrapWithCode(err, apperrors.CodeNotFound, "user not found")
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	err = f.FollowRepo.Create(ctx, domain.FollowEdge{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   f.Clock.Now(),
	})
	if err != nil && !errors.Is(err, follow.ErrAlreadyExists) {
		return fmt.Errorf("failed to follow user: %w", err)
	}

	f.Hub.Notify(followerID)
	return nil
}

func (f *FeedImpl) Unfollow(ctx context.Context, followingID string) error {
	followerID, err := f.Identity.Resolve(ctx)
	if err != nil {
		return err
	}

	if err := f.FollowRepo.Delete(ctx, followerID, followingID); err != nil && !errors.Is(err, follow.ErrNotFound) {
		return fmt.Errorf("failed to unfollow user: %w", err)
	}

	f.Hub.Notify(followerID)
	return nil
}
