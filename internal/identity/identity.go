// Package identity carries the authenticated caller through request contexts
// and verifies bearer tokens issued by the identity provider.
package identity

import (
	"context"
	"strings"

	"github.com/Fardeen26/flashfeed/internal/domain"
	apperrors "github.com/Fardeen26/flashfeed/pkg/errors"
)

//go:generate go run go.uber.org/mock/mockgen -source=identity.go -destination=mocks/mock.go

// Resolver yields the internal user id of the caller bound to ctx.
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

type userIDKey struct{}
type principalKey struct{}

// Principal is the verified token subject plus the profile claims sent with it.
type Principal struct {
	Subject  string
	Username string
	FullName string
	ImageURL string
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	if !ok || strings.TrimSpace(id) == "" {
		return "", false
	}
	return id, true
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok && p.Subject != ""
}

// ContextResolver resolves the caller from the id placed by WithUserID.
type ContextResolver struct{}

var _ Resolver = ContextResolver{}

func NewContextResolver() ContextResolver {
	return ContextResolver{}
}

func (ContextResolver) Resolve(ctx context.Context) (string, error) {
	id, ok := UserID(ctx)
	if !ok {
		return "", ErrUnauthenticated("no principal in request context")
	}
	return id, nil
}

// ErrUnauthenticated builds an AUTHENTICATION_REQUIRED error matching
// domain.ErrAuthenticationRequired.
func ErrUnauthenticated(message string) error {
	return apperrors.WrapWithCode(domain.ErrAuthenticationRequired, apperrors.CodeAuthenticationRequired, message)
}
