package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hongminglow/jobboard-be/internal/auth"
	"github.com/hongminglow/jobboard-be/internal/config"
	"github.com/hongminglow/jobboard-be/internal/http/handlers"
	"github.com/hongminglow/jobboard-be/internal/middleware"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// Routes builds the full handler: every resource route behind CORS, request
// ids, access logging and panic recovery.
func Routes(cfg config.Config, store storage.Store, log *slog.Logger) http.Handler {
	tokens := auth.NewTokenManager(cfg.SecretKey, cfg.JWTIssuer)
	guards := handlers.Guards{
		User:  middleware.User(tokens, log),
		Admin: middleware.Admin(tokens, log),
	}

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now(), store, log).Register(mux)
	handlers.NewUsersHandler(store, tokens, cfg.UserTokenTTL, log).Register(mux, guards)
	handlers.NewAdminsHandler(store, tokens, cfg.AdminTokenTTL, log).Register(mux, guards)
	handlers.NewReportsHandler(store, log).Register(mux, guards)
	handlers.NewJobsHandler(store, log).Register(mux, guards)
	handlers.NewCompaniesHandler(store, log).Register(mux, guards)
	handlers.NewResumesHandler(store, log).Register(mux, guards)
	handlers.NewApplicationsHandler(store, log).Register(mux, guards)
	handlers.NewMessagesHandler(store, log).Register(mux, guards)

	return middleware.Chain(mux,
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID,
		middleware.Logging(log),
		middleware.Recover(log),
	)
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, log *slog.Logger) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Routes(cfg, store, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
