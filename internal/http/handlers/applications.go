package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hongminglow/jobboard-be/internal/auth"
	"github.com/hongminglow/jobboard-be/internal/http/respond"
	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/models/dto"
	"github.com/hongminglow/jobboard-be/internal/pagination"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

// ApplicationsStore covers applications and the records they join against.
type ApplicationsStore interface {
	storage.ApplicationStore
	GetJob(ctx context.Context, id string) (models.Job, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	GetResume(ctx context.Context, id string) (models.Resume, error)
	GetResumeByUser(ctx context.Context, userID string) (models.Resume, error)
	CreateMessage(ctx context.Context, msg models.Message) (models.Message, error)
}

// ApplicationsHandler owns job applications and their status changes.
type ApplicationsHandler struct {
	store ApplicationsStore
	log   *slog.Logger
}

// NewApplicationsHandler constructs the handler.
func NewApplicationsHandler(store ApplicationsStore, log *slog.Logger) *ApplicationsHandler {
	return &ApplicationsHandler{store: store, log: log}
}

// Register attaches application routes to the mux.
func (h *ApplicationsHandler) Register(mux *http.ServeMux, g Guards) {
	mux.Handle("POST /apply", g.User(http.HandlerFunc(h.handleApply)))
	mux.Handle("GET /applications/{job_id}", g.User(http.HandlerFunc(h.handleListForJob)))
	mux.Handle("GET /my-applications", g.User(http.HandlerFunc(h.handleListMine)))
	mux.Handle("PATCH /applications/{id}/status", g.User(http.HandlerFunc(h.handleUpdateStatus)))
	mux.Handle("DELETE /applications/{id}", g.User(http.HandlerFunc(h.handleDelete)))
}

func (h *ApplicationsHandler) handleApply(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplyRequest
	if err := decode(w, r, &req); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	self := caller(r).Subject

	job, err := h.store.GetJob(r.Context(), req.JobID)
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "job not found"))
		return
	}
	if job.PostedBy == self {
		respond.Err(w, r, h.log, dto.Invalid("you cannot apply to your own job"))
		return
	}
	resume, err := h.store.GetResumeByUser(r.Context(), self)
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "resume not found"))
		return
	}

	created, err := h.store.CreateApplication(r.Context(), models.Application{
		JobID:    job.ID,
		UserID:   self,
		ResumeID: resume.ID,
		Status:   models.StatusPending,
	})
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrAlreadyExists, "you have already applied for this job"))
		return
	}
	respond.JSON(w, http.StatusCreated, "job application submitted successfully", created)
}

// handleListForJob shows the poster who applied, with names and resumes.
func (h *ApplicationsHandler) handleListForJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.store.GetJob(r.Context(), r.PathValue("job_id"))
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "job not found"))
		return
	}
	if job.PostedBy != caller(r).Subject {
		respond.Err(w, r, h.log, auth.ErrForbidden)
		return
	}

	page, err := h.store.ListApplications(r.Context(), storage.ApplicationFilter{JobID: job.ID}, pagination.ParseRequest(r.URL.Query()))
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}

	users := make(map[string]models.User, len(page.Items))
	resumes := make(map[string]*models.Resume, len(page.Items))
	for _, app := range page.Items {
		u, found, err := lookup(h.store.GetUser(r.Context(), app.UserID))
		if err != nil {
			respond.Err(w, r, h.log, err)
			return
		}
		if found {
			users[app.UserID] = u
		}
		res, found, err := lookup(h.store.GetResume(r.Context(), app.ResumeID))
		if err != nil {
			respond.Err(w, r, h.log, err)
			return
		}
		if found {
			resumes[app.ResumeID] = &res
		}
	}

	applicants := pagination.Map(page, func(app models.Application) models.Applicant {
		return models.Applicant{
			ApplicationID: app.ID,
			UserID:        app.UserID,
			UserName:      users[app.UserID].FullName(),
			ResumeID:      app.ResumeID,
			Resume:        resumes[app.ResumeID],
			Status:        app.Status,
			DateApplied:   app.DateApplied,
		}
	})
	respond.JSON(w, http.StatusOK, "applications retrieved successfully", applicants)
}

func (h *ApplicationsHandler) handleListMine(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListApplications(r.Context(), storage.ApplicationFilter{UserID: caller(r).Subject}, pagination.ParseRequest(r.URL.Query()))
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}

	jobs := make(map[string]models.Job, len(page.Items))
	for _, app := range page.Items {
		job, found, err := lookup(h.store.GetJob(r.Context(), app.JobID))
		if err != nil {
			respond.Err(w, r, h.log, err)
			return
		}
		if found {
			jobs[app.JobID] = job
		}
	}

	applied := pagination.Map(page, func(app models.Application) models.AppliedJob {
		job := jobs[app.JobID]
		companyName := job.CompanyName
		if companyName == "" {
			companyName = "N/A"
		}
		return models.AppliedJob{
			ApplicationID: app.ID,
			JobID:         app.JobID,
			JobTitle:      job.Title,
			CompanyName:   companyName,
			Location:      job.Location,
			Status:        app.Status,
			DateApplied:   app.DateApplied,
		}
	})
	respond.JSON(w, http.StatusOK, "applied jobs retrieved successfully", applied)
}

// handleUpdateStatus lets the job poster move an application along and
// notifies the applicant through their inbox.
func (h *ApplicationsHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateStatusRequest
	if err := decode(w, r, &req); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	self := caller(r).Subject

	app, err := h.store.GetApplication(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "application not found"))
		return
	}
	job, err := h.store.GetJob(r.Context(), app.JobID)
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "job not found"))
		return
	}
	if job.PostedBy != self {
		respond.Err(w, r, h.log, auth.ErrForbidden)
		return
	}

	updated, err := h.store.UpdateApplicationStatus(r.Context(), app.ID, req.Status)
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "application not found"))
		return
	}

	_, err = h.store.CreateMessage(r.Context(), models.Message{
		ApplicationID: app.ID,
		SenderID:      self,
		ReceiverID:    app.UserID,
		Message:       fmt.Sprintf("Your application for %q is now %s.", job.Title, req.Status),
		Status:        models.MessageUnread,
	})
	if err != nil {
		// The status change stands; the applicant just misses the notice.
		h.log.ErrorContext(r.Context(), "status change notification failed",
			"application_id", app.ID,
			"error", err,
		)
	}
	respond.JSON(w, http.StatusOK, "application status updated successfully", updated)
}

func (h *ApplicationsHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	app, err := h.store.GetApplication(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "application not found"))
		return
	}
	if app.UserID != caller(r).Subject {
		respond.Err(w, r, h.log, auth.ErrForbidden)
		return
	}
	if err := h.store.DeleteApplication(r.Context(), app.ID); err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "application not found"))
		return
	}
	respond.JSON(w, http.StatusOK, "job application deleted successfully", nil)
}
