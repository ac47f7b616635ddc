package handlers

import (
	"net/http"
	"strings"

	"github.com/hongminglow/jobboard-be/internal/auth"
	"github.com/hongminglow/jobboard-be/internal/http/respond"
	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/models/dto"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

func (h *UsersHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUser(r.Context(), caller(r).Subject)
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "user not found"))
		return
	}
	respond.JSON(w, http.StatusOK, "user profile", user)
}

func (h *UsersHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if err := decode(w, r, &req); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	self := caller(r).Subject

	var username, email string
	if req.Username != nil {
		username = *req.Username
	}
	if req.Email != nil {
		email = *req.Email
	}
	if err := h.checkAvailable(r.Context(), self, username, email); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}

	updated, err := h.store.UpdateUser(r.Context(), self, req.Patch())
	if err != nil {
		err = respond.Describe(err, storage.ErrNotFound, "user not found")
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrAlreadyExists, "username or email already exists"))
		return
	}
	respond.JSON(w, http.StatusOK, "user updated successfully", updated)
}

func (h *UsersHandler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePasswordRequest
	if err := decode(w, r, &req); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	user, err := h.store.GetUser(r.Context(), caller(r).Subject)
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "user not found"))
		return
	}
	if !auth.CheckPassword(req.OldPassword, user.PasswordHash) {
		respond.Err(w, r, h.log, respond.Describe(auth.ErrInvalidCredentials, auth.ErrInvalidCredentials, "old password is incorrect"))
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	if err := h.store.SetPassword(r.Context(), user.ID, hash); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	token, err := h.tokens.Issue(user.ID, models.RoleUser, h.ttl)
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, "password updated successfully", dto.TokenResponse{Token: token})
}

func (h *UsersHandler) handleRemoveAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.RemoveAccountRequest
	if err := decode(w, r, &req); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	user, err := h.store.GetUser(r.Context(), caller(r).Subject)
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "user not found"))
		return
	}
	if !strings.EqualFold(strings.TrimSpace(req.Email), user.Email) || !auth.CheckPassword(req.Password, user.PasswordHash) {
		respond.Err(w, r, h.log, auth.ErrInvalidCredentials)
		return
	}

	if err := h.store.DeleteUser(r.Context(), user.ID); err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "user not found"))
		return
	}
	h.log.InfoContext(r.Context(), "account removed", "user_id", user.ID)
	respond.JSON(w, http.StatusOK, "account removed successfully", nil)
}
