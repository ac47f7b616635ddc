package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/models/dto"
)

func TestUpdateProfile(t *testing.T) {
	api := newTestAPI(t)
	api.signupUser("taken")
	user, token := api.signupUser("frank")

	res := api.do(http.MethodPut, "/users/me", token, map[string]string{"first_name": "Franklin"})
	require.Equal(t, http.StatusOK, res.Code, res.Env.Error)
	updated := data[models.User](t, res)
	assert.Equal(t, user.ID, updated.ID)
	assert.Equal(t, "Franklin", updated.FirstName)
	assert.Equal(t, "frank", updated.Username)

	res = api.do(http.MethodPut, "/users/me", token, map[string]string{"username": "taken"})
	assert.Equal(t, http.StatusConflict, res.Code)
	assert.Equal(t, "username already exists", res.Env.Error)

	// Keeping your own username is not a conflict.
	res = api.do(http.MethodPut, "/users/me", token, map[string]string{"username": "frank"})
	assert.Equal(t, http.StatusOK, res.Code)

	res = api.do(http.MethodPut, "/users/me", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "no fields to update", res.Env.Error)
}

func TestChangePassword(t *testing.T) {
	api := newTestAPI(t)
	user, token := api.signupUser("gina")

	res := api.do(http.MethodPut, "/users/me/password", token, map[string]string{
		"old_password": "wrong", "new_password": "brand-new-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "old password is incorrect", res.Env.Error)

	res = api.do(http.MethodPut, "/users/me/password", token, map[string]string{
		"old_password": testPassword, "new_password": "brand-new-pass",
	})
	require.Equal(t, http.StatusOK, res.Code, res.Env.Error)
	fresh := data[dto.TokenResponse](t, res)
	claims, err := api.tokens.Verify(fresh.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Identity().Subject)

	old := api.do(http.MethodPost, "/users/login", "", map[string]string{"username": "gina", "password": testPassword})
	assert.Equal(t, http.StatusUnauthorized, old.Code)
	renewed := api.do(http.MethodPost, "/users/login", "", map[string]string{"username": "gina", "password": "brand-new-pass"})
	assert.Equal(t, http.StatusOK, renewed.Code)
}

func TestRemoveAccount(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.signupUser("hank")

	res := api.do(http.MethodDelete, "/users/remove_account", token, map[string]string{
		"email": "hank@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = api.do(http.MethodDelete, "/users/remove_account", token, map[string]string{
		"email": "HANK@example.com", "password": testPassword,
	})
	require.Equal(t, http.StatusOK, res.Code, res.Env.Error)

	me := api.do(http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusNotFound, me.Code)
	assert.Equal(t, "user not found", me.Env.Error)

	// The username is free again.
	api.signupUser("hank")
}
