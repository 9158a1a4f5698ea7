package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fardeen26/flashfeed/internal/domain"
)

var (
	ErrAlreadyExists = errors.New("user already exists")
	ErrNotFound      = fmt.Errorf("user %w", domain.ErrNotFound)
)

//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=mocks/mock.go
type Repository interface {
	// Create stores a user. A duplicate external id returns ErrAlreadyExists.
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.User, error)
}
