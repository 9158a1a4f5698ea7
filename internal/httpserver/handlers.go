package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/Fardeen26/flashfeed/internal/domain"
	apperrors "github.com/Fardeen26/flashfeed/pkg/errors"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 16

type createStoryRequest struct {
	StorageHandle string `json:"storageHandle"`
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}

func (s *Server) provisionUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.feed.ProvisionUser(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toUserJSON(u))
}

func (s *Server) createStory(w http.ResponseWriter, r *http.Request) {
	var req createStoryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, r, apperrors.WrapWithCode(domain.ErrInvalidInput, apperrors.CodeInvalidInput, "malformed request body"))
		return
	}

	id, err := s.feed.CreateStory(r.Context(), req.StorageHandle)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) buildFeed(w http.ResponseWriter, r *http.Request) {
	groups, err := s.feed.BuildFeed(r.Context(), s.clock.Now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toFeedJSON(groups))
}

func (s *Server) buildOwnFeed(w http.ResponseWriter, r *http.Request) {
	group, err := s.feed.BuildOwnFeed(r.Context(), s.clock.Now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toGroupJSON(group))
}

func (s *Server) markViewed(w http.ResponseWriter, r *http.Request) {
	if err := s.feed.MarkViewed(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) storyViewers(w http.ResponseWriter, r *http.Request) {
	viewers, err := s.feed.GetStoryViewers(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toViewersJSON(viewers))
}

func (s *Server) follow(w http.ResponseWriter, r *http.Request) {
	if err := s.feed.Follow(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) unfollow(w http.ResponseWriter, r *http.Request) {
	if err := s.feed.Unfollow(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
