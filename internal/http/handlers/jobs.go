package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hongminglow/jobboard-be/internal/auth"
	"github.com/hongminglow/jobboard-be/internal/http/respond"
	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/models/dto"
	"github.com/hongminglow/jobboard-be/internal/pagination"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

// JobsStore is what the jobs endpoints need: postings plus poster lookup.
type JobsStore interface {
	storage.JobStore
	GetUser(ctx context.Context, id string) (models.User, error)
}

// JobsHandler owns job posting endpoints. Reads are public; writes need the poster.
type JobsHandler struct {
	store JobsStore
	log   *slog.Logger
}

// NewJobsHandler constructs the handler.
func NewJobsHandler(store JobsStore, log *slog.Logger) *JobsHandler {
	return &JobsHandler{store: store, log: log}
}

// Register attaches job routes to the mux.
func (h *JobsHandler) Register(mux *http.ServeMux, g Guards) {
	mux.Handle("POST /jobs", g.User(http.HandlerFunc(h.handleCreate)))
	mux.HandleFunc("GET /jobs", h.handleList)
	mux.HandleFunc("GET /jobs/user", h.handleListByUser)
	mux.Handle("GET /jobs/mine", g.User(http.HandlerFunc(h.handleListMine)))
	mux.HandleFunc("GET /jobs/{id}", h.handleGet)
	mux.Handle("PUT /jobs/{id}", g.User(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /jobs/{id}", g.User(http.HandlerFunc(h.handleDelete)))
}

func (h *JobsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateJobRequest
	if err := decode(w, r, &req); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	poster, err := h.store.GetUser(r.Context(), caller(r).Subject)
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "user not found"))
		return
	}

	job := req.Job()
	job.PostedBy = poster.ID
	job.CompanyName = poster.Username
	created, err := h.store.CreateJob(r.Context(), job)
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "job created successfully", created)
}

func (h *JobsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, storage.JobFilter{})
}

func (h *JobsHandler) handleListByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if err := required("user_id", userID); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	h.list(w, r, storage.JobFilter{PostedBy: userID})
}

func (h *JobsHandler) handleListMine(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, storage.JobFilter{PostedBy: caller(r).Subject})
}

func (h *JobsHandler) list(w http.ResponseWriter, r *http.Request, filter storage.JobFilter) {
	page, err := h.store.ListJobs(r.Context(), filter, pagination.ParseRequest(r.URL.Query()))
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, "jobs retrieved successfully", page)
}

func (h *JobsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	job, err := h.store.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "job not found"))
		return
	}
	respond.JSON(w, http.StatusOK, "job retrieved successfully", job)
}

func (h *JobsHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateJobRequest
	if err := decode(w, r, &req); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	job, err := h.owned(r)
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	updated, err := h.store.UpdateJob(r.Context(), job.ID, req.Patch())
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "job not found"))
		return
	}
	respond.JSON(w, http.StatusOK, "job updated successfully", updated)
}

func (h *JobsHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	job, err := h.owned(r)
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	if err := h.store.DeleteJob(r.Context(), job.ID); err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "job not found"))
		return
	}
	respond.JSON(w, http.StatusOK, "job deleted successfully", nil)
}

// owned loads the job in the path and checks the caller posted it.
func (h *JobsHandler) owned(r *http.Request) (models.Job, error) {
	job, err := h.store.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		return models.Job{}, respond.Describe(err, storage.ErrNotFound, "job not found")
	}
	if job.PostedBy != caller(r).Subject {
		return models.Job{}, auth.ErrForbidden
	}
	return job, nil
}
