package blobimpl

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Fardeen26/flashfeed/internal/blob"
	"github.com/Fardeen26/flashfeed/internal/domain"
	apperrors "github.com/Fardeen26/flashfeed/pkg/errors"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"github.com/Fardeen26/flashfeed/pkg/retry"
)

// HTTP resolves handles against a public base URL and confirms the object
// exists with a HEAD request.
type HTTP struct {
	baseURL  *url.URL
	client   *http.Client
	retryCfg retry.Config
	log      logger.Logger
}

var _ blob.Resolver = (*HTTP)(nil)

func NewHTTP(baseURL string, client *http.Client, retryCfg retry.Config, log logger.Logger) (*HTTP, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("blob base url is required")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse blob base url: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{
		baseURL:  u,
		client:   client,
		retryCfg: retryCfg,
		log:      log.WithComponent("BlobHTTP"),
	}, nil
}

func (h *HTTP) ResolveURL(ctx context.Context, handle string) (string, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" || strings.Contains(handle, "..") {
		return "", storageError(handle, fmt.Errorf("invalid handle"))
	}

	target := h.baseURL.JoinPath(url.PathEscape(handle)).String()

	err := retry.Do(ctx, h.log, "blob_head", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
		if err != nil {
			return retry.Permanent(err)
		}
		resp, err := h.client.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil
		case resp.StatusCode >= 500:
			return fmt.Errorf("blob store returned %d", resp.StatusCode)
		default:
			return retry.Permanent(fmt.Errorf("blob store returned %d", resp.StatusCode))
		}
	}, h.retryCfg)
	if err != nil {
		return "", storageError(handle, err)
	}

	return target, nil
}

func storageError(handle string, cause error) error {
	return apperrors.WrapWithCode(
		fmt.Errorf("%w: %w", domain.ErrStorageResolution, cause),
		apperrors.CodeStorageResolution,
		fmt.Sprintf("resolve handle %q", handle),
	)
}
