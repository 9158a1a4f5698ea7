// Package httpserver exposes the feed over JSON/HTTP and a websocket stream.
package httpserver

import (
	"net/http"
	"time"

	"github.com/Fardeen26/flashfeed/internal/feed"
	"github.com/Fardeen26/flashfeed/internal/identity"
	"github.com/Fardeen26/flashfeed/internal/ratelimit"
	"github.com/Fardeen26/flashfeed/internal/realtime"
	"github.com/Fardeen26/flashfeed/internal/repositories/user"
	"github.com/Fardeen26/flashfeed/pkg/config"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
	"go.uber.org/fx"
)

// TokenVerifier turns a raw bearer token into a verified principal.
type TokenVerifier interface {
	Verify(token string) (identity.Principal, error)
}

type Opts struct {
	fx.In

	Feed     feed.Client
	Verifier TokenVerifier
	Users    user.Repository
	Limiter  ratelimit.Limiter
	Hub      *realtime.Hub
	Clock    clockwork.Clock
	Config   *config.Config
	Logger   logger.Logger
}

type Server struct {
	feed     feed.Client
	verifier TokenVerifier
	users    user.Repository
	limiter  ratelimit.Limiter
	hub      *realtime.Hub
	clock    clockwork.Clock
	logger   logger.Logger

	streamInterval time.Duration
	upgrader       websocket.Upgrader
	handler        http.Handler
}

func New(opts Opts) *Server {
	s := &Server{
		feed:           opts.Feed,
		verifier:       opts.Verifier,
		users:          opts.Users,
		limiter:        opts.Limiter,
		hub:            opts.Hub,
		clock:          opts.Clock,
		logger:         opts.Logger.WithComponent("HTTPServer"),
		streamInterval: opts.Config.Feed.StreamInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin policy is enforced by the CORS layer.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	if s.streamInterval <= 0 {
		s.streamInterval = 30 * time.Second
	}

	s.handler = corsSettings().Handler(s.logRequests(s.routes()))
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)

	api := r.PathPrefix("/v1").Subrouter()
	api.Use(s.authenticate)

	api.HandleFunc("/users", s.limited(s.provisionUser)).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}/follow", s.limited(s.follow)).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}/follow", s.limited(s.unfollow)).Methods(http.MethodDelete)

	api.HandleFunc("/stories", s.limited(s.createStory)).Methods(http.MethodPost)
	api.HandleFunc("/stories/{id}/views", s.limited(s.markViewed)).Methods(http.MethodPost)
	api.HandleFunc("/stories/{id}/viewers", s.storyViewers).Methods(http.MethodGet)

	api.HandleFunc("/feed", s.buildFeed).Methods(http.MethodGet)
	api.HandleFunc("/feed/own", s.buildOwnFeed).Methods(http.MethodGet)
	api.HandleFunc("/feed/stream", s.streamFeed).Methods(http.MethodGet)

	return r
}

func corsSettings() *cors.Cors {
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
}
