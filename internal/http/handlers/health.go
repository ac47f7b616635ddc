package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hongminglow/jobboard-be/internal/http/respond"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler returns uptime and store reachability.
type HealthHandler struct {
	startedAt time.Time
	store     Pinger
	log       *slog.Logger
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(startedAt time.Time, store Pinger, log *slog.Logger) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, store: store, log: log}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	body := map[string]string{
		"status": "ok",
		"store":  "ok",
		"uptime": time.Since(h.startedAt).Truncate(time.Second).String(),
	}
	if err := h.store.Ping(ctx); err != nil {
		h.log.WarnContext(r.Context(), "store ping failed", "error", err)
		respond.Error(w, http.StatusServiceUnavailable, "store unreachable")
		return
	}
	respond.JSON(w, http.StatusOK, "healthy", body)
}
