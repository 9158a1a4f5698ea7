package blobimpl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/Fardeen26/flashfeed/internal/blob"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Drive resolves handles as Google Drive file ids.
type Drive struct {
	files *drive.FilesService
	log   logger.Logger
}

var _ blob.Resolver = (*Drive)(nil)

func NewDrive(svc *drive.Service, log logger.Logger) *Drive {
	return &Drive{
		files: svc.Files,
		log:   log.WithComponent("BlobDrive"),
	}
}

// NewDriveService builds a read-only Drive client from a service account key file.
func NewDriveService(ctx context.Context, credentialsPath string) (*drive.Service, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account file: %w", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(b, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	svc, err := drive.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}
	return svc, nil
}

func (d *Drive) ResolveURL(ctx context.Context, handle string) (string, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return "", storageError(handle, fmt.Errorf("empty handle"))
	}

	file, err := d.files.Get(handle).
		Fields("id", "webContentLink", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return "", storageError(handle, fmt.Errorf("drive file not found"))
		}
		d.log.Warn("Drive lookup failed", "handle", handle, "error", err)
		return "", storageError(handle, err)
	}

	if file.WebContentLink != "" {
		return file.WebContentLink, nil
	}
	if file.WebViewLink != "" {
		return file.WebViewLink, nil
	}
	return "", storageError(handle, fmt.Errorf("drive file has no shareable link"))
}
