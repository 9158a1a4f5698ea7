package domain

import (
	"errors"

	apperrors "github.com/Fardeen26/flashfeed/pkg/errors"
)

var (
	// ErrStorageResolution means a blob handle did not resolve to a retrievable URL.
	ErrStorageResolution = errors.New("storage handle did not resolve")
	// ErrAuthenticationRequired means the caller has no resolvable principal.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrConcurrentDuplicateView is raised by storage when a racing insert lost
	// to an identical view mark. It never leaves the ledger.
	ErrConcurrentDuplicateView = errors.New("concurrent duplicate view")

	ErrNotFound     = apperrors.ErrNotFound
	ErrForbidden    = apperrors.ErrForbidden
	ErrInvalidInput = apperrors.ErrInvalidInput
)
