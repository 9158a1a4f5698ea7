package httpserver

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Fardeen26/flashfeed/internal/identity"
	"github.com/Fardeen26/flashfeed/internal/repositories/user"
	apperrors "github.com/Fardeen26/flashfeed/pkg/errors"
)

// authenticate verifies the bearer token and binds the principal to the
// request. Principals that already have a user also get their internal id
// bound; unprovisioned ones can only reach POST /v1/users.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := identity.FromAuthorizationHeader(r.Header.Get("Authorization"))
		if !ok {
			// Browsers cannot set headers on websocket handshakes.
			token = r.URL.Query().Get("access_token")
		}

		p, err := s.verifier.Verify(token)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx := identity.WithPrincipal(r.Context(), p)
		u, err := s.users.GetByExternalID(ctx, p.Subject)
		switch {
		case err == nil:
			ctx = identity.WithUserID(ctx, u.ID)
		case errors.Is(err, user.ErrNotFound):
		default:
			s.writeError(w, r, fmt.Errorf("failed to resolve caller: %w", err))
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// limited applies the per-caller write limit.
func (s *Server) limited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := identity.UserID(r.Context())
		if !ok {
			if p, ok := identity.PrincipalFrom(r.Context()); ok {
				key = "sub:" + p.Subject
			} else {
				key = "ip:" + r.RemoteAddr
			}
		}

		if !s.limiter.Allow(key) {
			s.writeError(w, r, apperrors.New(apperrors.CodeRateLimited, "too many requests"))
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rec.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	rec.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Debug("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
