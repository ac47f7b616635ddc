package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hongminglow/jobboard-be/internal/http/respond"
	"github.com/hongminglow/jobboard-be/internal/models/dto"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

// ReportStore counts records created inside a time range.
type ReportStore interface {
	CountUsers(ctx context.Context, r storage.TimeRange) (int64, error)
	CountJobs(ctx context.Context, r storage.TimeRange) (int64, error)
	CountApplications(ctx context.Context, r storage.TimeRange) (int64, error)
}

// ReportsHandler serves admin-only activity counts.
type ReportsHandler struct {
	store ReportStore
	log   *slog.Logger
}

// NewReportsHandler constructs the handler.
func NewReportsHandler(store ReportStore, log *slog.Logger) *ReportsHandler {
	return &ReportsHandler{store: store, log: log}
}

// Register attaches report routes to the mux.
func (h *ReportsHandler) Register(mux *http.ServeMux, g Guards) {
	mux.Handle("GET /admin/report/users", g.Admin(h.report("users", h.store.CountUsers)))
	mux.Handle("GET /admin/report/jobs", g.Admin(h.report("jobs", h.store.CountJobs)))
	mux.Handle("GET /admin/report/applications", g.Admin(h.report("applications", h.store.CountApplications)))
}

func (h *ReportsHandler) report(resource string, count func(context.Context, storage.TimeRange) (int64, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rng, err := dto.ParseReportRange(r.URL.Query())
		if err != nil {
			respond.Err(w, r, h.log, err)
			return
		}
		n, err := count(r.Context(), storage.TimeRange{From: rng.Start, To: rng.End})
		if err != nil {
			respond.Err(w, r, h.log, err)
			return
		}
		respond.JSON(w, http.StatusOK, resource+" report", dto.ReportResponse{
			Resource:  resource,
			StartDate: rng.Start.Format(dto.ReportLayout),
			EndDate:   rng.End.Format(dto.ReportLayout),
			Count:     n,
		})
	})
}
