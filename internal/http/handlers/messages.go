package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hongminglow/jobboard-be/internal/auth"
	"github.com/hongminglow/jobboard-be/internal/http/respond"
	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/models/dto"
	"github.com/hongminglow/jobboard-be/internal/pagination"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

// MessagesStore covers message threads and the application they hang off.
type MessagesStore interface {
	storage.MessageStore
	GetApplication(ctx context.Context, id string) (models.Application, error)
	GetJob(ctx context.Context, id string) (models.Job, error)
}

// MessagesHandler owns application threads and the user inbox.
type MessagesHandler struct {
	store MessagesStore
	log   *slog.Logger
}

// NewMessagesHandler constructs the handler.
func NewMessagesHandler(store MessagesStore, log *slog.Logger) *MessagesHandler {
	return &MessagesHandler{store: store, log: log}
}

// Register attaches message routes to the mux.
func (h *MessagesHandler) Register(mux *http.ServeMux, g Guards) {
	mux.Handle("GET /messages/application/{application_id}", g.User(http.HandlerFunc(h.handleThread)))
	mux.Handle("GET /messages/user/messages", g.User(http.HandlerFunc(h.handleInbox)))
	mux.Handle("PATCH /messages/{id}/read", g.User(http.HandlerFunc(h.handleMarkRead)))
	mux.Handle("POST /messages/application/{application_id}/send", g.User(http.HandlerFunc(h.handleSend)))
}

// participants returns the applicant and the job poster of an application.
// The poster is empty when the job no longer exists.
func (h *MessagesHandler) participants(ctx context.Context, applicationID string) (models.Application, []string, error) {
	app, err := h.store.GetApplication(ctx, applicationID)
	if err != nil {
		return models.Application{}, nil, respond.Describe(err, storage.ErrNotFound, "application not found")
	}
	people := []string{app.UserID}
	job, found, err := lookup(h.store.GetJob(ctx, app.JobID))
	if err != nil {
		return models.Application{}, nil, err
	}
	if found {
		people = append(people, job.PostedBy)
	}
	return app, people, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func (h *MessagesHandler) handleThread(w http.ResponseWriter, r *http.Request) {
	app, people, err := h.participants(r.Context(), r.PathValue("application_id"))
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	if !contains(people, caller(r).Subject) {
		respond.Err(w, r, h.log, auth.ErrForbidden)
		return
	}
	page, err := h.store.ListMessages(r.Context(), storage.MessageFilter{ApplicationID: app.ID}, pagination.ParseRequest(r.URL.Query()))
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, "messages retrieved successfully", page)
}

func (h *MessagesHandler) handleInbox(w http.ResponseWriter, r *http.Request) {
	filter := storage.MessageFilter{ReceiverID: caller(r).Subject}
	if raw := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))); raw != "" {
		filter.Status = models.MessageStatus(raw)
		if filter.Status != models.MessageUnread && filter.Status != models.MessageRead {
			respond.Err(w, r, h.log, dto.Invalid("status must be unread or read"))
			return
		}
	}
	page, err := h.store.ListMessages(r.Context(), filter, pagination.ParseRequest(r.URL.Query()))
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, "messages retrieved successfully", page)
}

func (h *MessagesHandler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	msg, err := h.store.GetMessage(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "message not found"))
		return
	}
	if msg.ReceiverID != caller(r).Subject {
		respond.Err(w, r, h.log, auth.ErrForbidden)
		return
	}
	updated, err := h.store.MarkMessageRead(r.Context(), msg.ID)
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "message not found"))
		return
	}
	respond.JSON(w, http.StatusOK, "message marked as read", updated)
}

func (h *MessagesHandler) handleSend(w http.ResponseWriter, r *http.Request) {
	var req dto.SendMessageRequest
	if err := decode(w, r, &req); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	self := caller(r).Subject

	app, people, err := h.participants(r.Context(), r.PathValue("application_id"))
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	if !contains(people, self) {
		respond.Err(w, r, h.log, auth.ErrForbidden)
		return
	}

	receiver := req.ReceiverID
	if receiver == "" {
		for _, p := range people {
			if p != self {
				receiver = p
				break
			}
		}
	}
	if receiver == "" || receiver == self || !contains(people, receiver) {
		respond.Err(w, r, h.log, dto.Invalid("receiver must be the other participant of the application"))
		return
	}

	sent, err := h.store.CreateMessage(r.Context(), models.Message{
		ApplicationID: app.ID,
		SenderID:      self,
		ReceiverID:    receiver,
		Message:       req.Message,
		Status:        models.MessageUnread,
	})
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "message sent successfully", sent)
}
