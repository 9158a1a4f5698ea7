package blobimpl

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Fardeen26/flashfeed/internal/blob"
	"github.com/Fardeen26/flashfeed/pkg/config"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"github.com/Fardeen26/flashfeed/pkg/retry"
)

// New picks the resolver named by BLOB_PROVIDER.
func New(cfg *config.Config, log logger.Logger) (blob.Resolver, error) {
	switch cfg.Blob.Provider {
	case config.BlobProviderHTTP:
		return NewHTTP(cfg.Blob.BaseURL, &http.Client{Timeout: 10 * time.Second}, retry.FromConfig(cfg), log)
	case config.BlobProviderDrive:
		svc, err := NewDriveService(context.Background(), cfg.Blob.DriveCredentials)
		if err != nil {
			return nil, err
		}
		return NewDrive(svc, log), nil
	default:
		return nil, fmt.Errorf("unsupported blob provider %q", cfg.Blob.Provider)
	}
}
