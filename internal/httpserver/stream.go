package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/Fardeen26/flashfeed/internal/identity"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// streamFeed pushes a fresh feed snapshot on connect, whenever a write
// invalidates the caller's feed, and on every poll tick so expiries show up
// without any write happening.
func (s *Server) streamFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.UserID(r.Context())
	if !ok {
		s.writeError(w, r, identity.ErrUnauthenticated("no principal in request context"))
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, unsubscribe := s.hub.Subscribe(userID)
	defer unsubscribe()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Client frames are ignored; reading detects the close.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := s.clock.NewTicker(s.streamInterval)
	defer ticker.Stop()

	push := func() bool {
		groups, err := s.feed.BuildFeed(ctx, s.clock.Now())
		if err != nil {
			s.logger.Error("Failed to build streamed feed", "user_id", userID, "error", err)
			return ctx.Err() == nil
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(toFeedJSON(groups)); err != nil {
			s.logger.Debug("Stream write failed", "user_id", userID, "error", err)
			return false
		}
		return true
	}

	if !push() {
		return
	}

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case _, open := <-updates:
			if !open || !push() {
				return
			}
		case <-ticker.Chan():
			if !push() {
				return
			}
		}
	}
}
