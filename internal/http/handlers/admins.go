package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hongminglow/jobboard-be/internal/auth"
	"github.com/hongminglow/jobboard-be/internal/http/respond"
	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/models/dto"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

// AdminsHandler owns operator signup, login and profile.
type AdminsHandler struct {
	store  storage.AdminStore
	tokens TokenIssuer
	ttl    time.Duration
	log    *slog.Logger
}

// NewAdminsHandler constructs the handler.
func NewAdminsHandler(store storage.AdminStore, tokens TokenIssuer, ttl time.Duration, log *slog.Logger) *AdminsHandler {
	return &AdminsHandler{store: store, tokens: tokens, ttl: ttl, log: log}
}

// Register attaches admin routes to the mux.
func (h *AdminsHandler) Register(mux *http.ServeMux, g Guards) {
	mux.HandleFunc("POST /admins/signup", h.handleSignup)
	mux.HandleFunc("POST /admins/login", h.handleLogin)
	mux.Handle("GET /admins/me", g.Admin(http.HandlerFunc(h.handleMe)))
}

func (h *AdminsHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminSignupRequest
	if err := decode(w, r, &req); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	if err := h.checkAvailable(r.Context(), req.Username, req.Email); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	created, err := h.store.CreateAdmin(r.Context(), models.Admin{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrAlreadyExists, "admin already exists"))
		return
	}
	respond.JSON(w, http.StatusCreated, "admin created successfully", created)
}

func (h *AdminsHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decode(w, r, &req); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}

	admin, found, err := lookup(h.store.FindAdminByUsernameOrEmail(r.Context(), req.Identifier()))
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	if !found || !auth.CheckPassword(req.Password, admin.PasswordHash) {
		h.log.WarnContext(r.Context(), "admin login rejected", "identifier", req.Identifier())
		respond.Err(w, r, h.log, auth.ErrInvalidCredentials)
		return
	}

	token, err := h.tokens.Issue(admin.ID, models.RoleAdmin, h.ttl)
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, "login successful", dto.AdminLoginResponse{Token: token, Admin: admin})
}

func (h *AdminsHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	admin, err := h.store.GetAdmin(r.Context(), caller(r).Subject)
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "admin not found"))
		return
	}
	respond.JSON(w, http.StatusOK, "admin profile", admin)
}

// checkAvailable runs the same lookup login uses, so an identifier can never
// resolve to two admins.
func (h *AdminsHandler) checkAvailable(ctx context.Context, username, email string) error {
	for _, ident := range []string{username, email} {
		_, found, err := lookup(h.store.FindAdminByUsernameOrEmail(ctx, ident))
		if err != nil {
			return err
		}
		if found {
			return respond.Describe(storage.ErrAlreadyExists, storage.ErrAlreadyExists, "admin with this username or email already exists")
		}
	}
	return nil
}
