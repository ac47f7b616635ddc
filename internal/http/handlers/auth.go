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

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(subject string, role models.Role, ttl time.Duration) (string, error)
}

// UsersHandler owns the account endpoints under /users.
type UsersHandler struct {
	store  storage.UserStore
	tokens TokenIssuer
	ttl    time.Duration
	log    *slog.Logger
}

// NewUsersHandler constructs the handler. ttl is the lifetime of user tokens.
func NewUsersHandler(store storage.UserStore, tokens TokenIssuer, ttl time.Duration, log *slog.Logger) *UsersHandler {
	return &UsersHandler{store: store, tokens: tokens, ttl: ttl, log: log}
}

// Register attaches the account routes to the mux.
func (h *UsersHandler) Register(mux *http.ServeMux, g Guards) {
	mux.HandleFunc("POST /users/signup", h.handleSignup)
	mux.HandleFunc("POST /users/login", h.handleLogin)
	mux.Handle("POST /users/logout", g.User(http.HandlerFunc(h.handleLogout)))
	mux.Handle("GET /users/me", g.User(http.HandlerFunc(h.handleMe)))
	mux.Handle("PUT /users/me", g.User(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("PUT /users/me/password", g.User(http.HandlerFunc(h.handleChangePassword)))
	mux.Handle("DELETE /users/remove_account", g.User(http.HandlerFunc(h.handleRemoveAccount)))
}

func (h *UsersHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := decode(w, r, &req); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	if err := h.checkAvailable(r.Context(), "", req.Username, req.Email); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	created, err := h.store.CreateUser(r.Context(), models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        req.Email,
		BirthDate:    req.BirthDate,
		PasswordHash: hash,
	})
	if err != nil {
		// Lost a race with a concurrent signup; the unique constraint decided.
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrAlreadyExists, "user already exists"))
		return
	}

	respond.JSON(w, http.StatusCreated, "user created successfully", created)
}

func (h *UsersHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decode(w, r, &req); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}

	user, found, err := lookup(h.store.FindByUsernameOrEmail(r.Context(), req.Identifier()))
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	if !found || !auth.CheckPassword(req.Password, user.PasswordHash) {
		h.log.InfoContext(r.Context(), "login rejected", "identifier", req.Identifier())
		respond.Err(w, r, h.log, auth.ErrInvalidCredentials)
		return
	}

	token, err := h.tokens.Issue(user.ID, models.RoleUser, h.ttl)
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, "login successful", dto.LoginResponse{Token: token, User: user})
}

// handleLogout exists for client symmetry. Tokens are stateless and stay
// valid until they expire.
func (h *UsersHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, "logged out successfully", nil)
}

// checkAvailable fails with ErrAlreadyExists when username or email belongs
// to a user other than self.
func (h *UsersHandler) checkAvailable(ctx context.Context, self, username, email string) error {
	if username != "" {
		u, found, err := lookup(h.store.FindByUsername(ctx, username))
		if err != nil {
			return err
		}
		if found && u.ID != self {
			return respond.Describe(storage.ErrAlreadyExists, storage.ErrAlreadyExists, "username already exists")
		}
	}
	if email != "" {
		u, found, err := lookup(h.store.FindByEmail(ctx, email))
		if err != nil {
			return err
		}
		if found && u.ID != self {
			return respond.Describe(storage.ErrAlreadyExists, storage.ErrAlreadyExists, "email already exists")
		}
	}
	return nil
}
