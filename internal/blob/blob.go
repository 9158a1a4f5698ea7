package blob

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=blob.go -destination=mocks/mock.go

// Resolver turns an opaque storage handle into a retrievable URL.
// Failures wrap domain.ErrStorageResolution.
type Resolver interface {
	ResolveURL(ctx context.Context, handle string) (string, error)
}
