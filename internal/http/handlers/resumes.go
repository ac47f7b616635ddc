package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hongminglow/jobboard-be/internal/http/respond"
	"github.com/hongminglow/jobboard-be/internal/models/dto"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

// ResumesHandler serves the one-per-user resume. Every route needs a user token.
type ResumesHandler struct {
	store storage.ResumeStore
	log   *slog.Logger
}

// NewResumesHandler constructs the handler.
func NewResumesHandler(store storage.ResumeStore, log *slog.Logger) *ResumesHandler {
	return &ResumesHandler{store: store, log: log}
}

// Register attaches resume routes to the mux.
func (h *ResumesHandler) Register(mux *http.ServeMux, g Guards) {
	mux.Handle("POST /resume", g.User(http.HandlerFunc(h.handleUpsert)))
	mux.Handle("GET /resume", g.User(http.HandlerFunc(h.handleGetMine)))
	mux.Handle("GET /resume/{id}", g.User(http.HandlerFunc(h.handleGet)))
	mux.Handle("GET /resume/user/{user_id}", g.User(http.HandlerFunc(h.handleGetByUser)))
}

func (h *ResumesHandler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var req dto.ResumeRequest
	if err := decode(w, r, &req); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	resume, err := h.store.UpsertResume(r.Context(), caller(r).Subject, req.ResumeSections)
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, "resume updated successfully", resume)
}

func (h *ResumesHandler) handleGetMine(w http.ResponseWriter, r *http.Request) {
	resume, err := h.store.GetResumeByUser(r.Context(), caller(r).Subject)
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "resume not found"))
		return
	}
	respond.JSON(w, http.StatusOK, "resume retrieved successfully", resume)
}

func (h *ResumesHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	resume, err := h.store.GetResume(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "resume not found"))
		return
	}
	respond.JSON(w, http.StatusOK, "resume retrieved successfully", resume)
}

func (h *ResumesHandler) handleGetByUser(w http.ResponseWriter, r *http.Request) {
	resume, err := h.store.GetResumeByUser(r.Context(), r.PathValue("user_id"))
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "resume not found"))
		return
	}
	respond.JSON(w, http.StatusOK, "resume retrieved successfully", resume)
}
