package handlers

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/models/dto"
)

func TestAdminSignupLogin(t *testing.T) {
	api := newTestAPI(t)
	created, _ := api.signupAdmin("ops")

	res := api.do(http.MethodPost, "/admins/signup", "", map[string]string{
		"username": "ops", "email": "another@example.com", "password": testPassword,
	})
	assert.Equal(t, http.StatusConflict, res.Code)

	res = api.do(http.MethodPost, "/admins/login", "", map[string]string{"email": "ops@example.com", "password": testPassword})
	require.Equal(t, http.StatusOK, res.Code, res.Env.Error)
	login := data[dto.AdminLoginResponse](t, res)
	assert.Equal(t, created.ID, login.Admin.ID)

	claims, err := api.tokens.Verify(login.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Identity().Role)
	assert.Equal(t, created.ID, claims.Identity().Subject)

	me := api.do(http.MethodGet, "/admins/me", login.Token, nil)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, "ops", data[models.Admin](t, me).Username)

	res = api.do(http.MethodPost, "/admins/login", "", map[string]string{"username": "ops", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestAdminRoutes_RejectUserTokens(t *testing.T) {
	api := newTestAPI(t)
	_, userToken := api.signupUser("ivy")

	for _, p := range []string{"/admins/me", "/admin/report/users", "/admin/report/jobs", "/admin/report/applications"} {
		res := api.do(http.MethodGet, p, userToken, nil)
		assert.Equal(t, http.StatusForbidden, res.Code, p)
		assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, p, "", nil).Code, p)
	}
}

func TestReports(t *testing.T) {
	api := newTestAPI(t)
	_, adminToken := api.signupAdmin("auditor")
	_, alice := api.signupUser("alice")
	_, bob := api.signupUser("bob")
	job := api.postJob(alice, "Backend Engineer")
	api.postJob(alice, "Frontend Engineer")
	api.saveResume(bob)
	api.apply(bob, job.ID)

	now := time.Now().UTC()
	window := url.Values{
		"start_date": {now.Add(-time.Hour).Format(dto.ReportLayout)},
		"end_date":   {now.Add(time.Hour).Format(dto.ReportLayout)},
	}.Encode()

	for resource, want := range map[string]int64{"users": 2, "jobs": 2, "applications": 1} {
		res := api.do(http.MethodGet, "/admin/report/"+resource+"?"+window, adminToken, nil)
		require.Equal(t, http.StatusOK, res.Code, res.Env.Error)
		report := data[dto.ReportResponse](t, res)
		assert.Equal(t, resource, report.Resource)
		assert.Equal(t, want, report.Count, resource)
	}

	past := url.Values{
		"start_date": {"2001-01-01T00:00:00"},
		"end_date":   {"2001-02-01T00:00:00"},
	}.Encode()
	res := api.do(http.MethodGet, "/admin/report/users?"+past, adminToken, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Zero(t, data[dto.ReportResponse](t, res).Count)
}

func TestReports_BadRange(t *testing.T) {
	api := newTestAPI(t)
	_, adminToken := api.signupAdmin("auditor")

	tests := []struct {
		query string
		want  string
	}{
		{query: "", want: "start date and end date are required"},
		{query: "start_date=2024-01-01&end_date=2024-02-01", want: "invalid date format, use YYYY-MM-DDTHH:MM:SS"},
		{query: "start_date=2024-02-01T00:00:00&end_date=2024-01-01T00:00:00", want: "end_date must be after start_date"},
	}
	for _, tt := range tests {
		res := api.do(http.MethodGet, "/admin/report/jobs?"+tt.query, adminToken, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code, tt.query)
		assert.Equal(t, tt.want, res.Env.Error, tt.query)
	}
}
