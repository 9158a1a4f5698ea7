package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Fardeen26/flashfeed/internal/domain"
	apperrors "github.com/Fardeen26/flashfeed/pkg/errors"
)

type storyJSON struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"ownerId"`
	ImageURL      string    `json:"imageUrl"`
	StorageHandle string    `json:"storageHandle"`
	CreatedAt     time.Time `json:"createdAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

type ownerJSON struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type groupJSON struct {
	Owner        ownerJSON   `json:"owner"`
	Stories      []storyJSON `json:"stories"`
	HasViewedAll bool        `json:"hasViewedAll"`
}

type viewerJSON struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	FullName string    `json:"fullName,omitempty"`
	ImageURL string    `json:"imageUrl,omitempty"`
	ViewedAt time.Time `json:"viewedAt"`
}

type userJSON struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type errorJSON struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toGroupJSON(g domain.StoryGroup) groupJSON {
	out := groupJSON{
		Owner: ownerJSON{
			ID:       g.Owner.ID,
			Username: g.Owner.Username,
			FullName: g.Owner.FullName,
			ImageURL: g.Owner.ImageURL,
		},
		Stories:      make([]storyJSON, 0, len(g.Stories)),
		HasViewedAll: g.HasViewedAll,
	}
	for _, st := range g.Stories {
		out.Stories = append(out.Stories, storyJSON{
			ID:            st.ID,
			OwnerID:       st.OwnerID,
			ImageURL:      st.ImageURL,
			StorageHandle: st.StorageHandle,
			CreatedAt:     st.CreatedAt,
			ExpiresAt:     st.ExpiresAt,
		})
	}
	return out
}

func toFeedJSON(groups []domain.StoryGroup) []groupJSON {
	out := make([]groupJSON, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupJSON(g))
	}
	return out
}

func toViewersJSON(viewers []domain.Viewer) []viewerJSON {
	out := make([]viewerJSON, 0, len(viewers))
	for _, v := range viewers {
		out = append(out, viewerJSON{
			UserID:   v.UserID,
			Username: v.Username,
			FullName: v.FullName,
			ImageURL: v.ImageURL,
			ViewedAt: v.ViewedAt,
		})
	}
	return out
}

func toUserJSON(u *domain.User) userJSON {
	return userJSON{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}

// statusFor maps an error chain to its HTTP status and public code.
func statusFor(err error) (int, string) {
	switch code := apperrors.GetCode(err); {
	case code == apperrors.CodeRateLimited:
		return http.StatusTooManyRequests, code
	case errors.Is(err, domain.ErrAuthenticationRequired):
		return http.StatusUnauthorized, apperrors.CodeAuthenticationRequired
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, apperrors.CodeForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, apperrors.CodeNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, apperrors.CodeInvalidInput
	case errors.Is(err, domain.ErrStorageResolution):
		return http.StatusUnprocessableEntity, apperrors.CodeStorageResolution
	default:
		return http.StatusInternalServerError, apperrors.CodeInternal
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)

	message := apperrors.GetMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		message = "internal error"
	}

	s.writeJSON(w, status, map[string]errorJSON{
		"error": {Code: code, Message: message},
	})
}
