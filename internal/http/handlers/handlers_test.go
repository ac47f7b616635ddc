package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/jobboard-be/internal/auth"
	"github.com/hongminglow/jobboard-be/internal/logging"
	"github.com/hongminglow/jobboard-be/internal/middleware"
	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/pagination"
	"github.com/hongminglow/jobboard-be/internal/storage/memory"
)

const testPassword = "s3cret-pass"

type testAPI struct {
	t      *testing.T
	store  *memory.Store
	tokens *auth.TokenManager
	mux    *http.ServeMux
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.New()
	tokens := auth.NewTokenManager("test-secret", "jobboard-test")
	log := logging.Discard()
	g := Guards{
		User:  middleware.User(tokens, log),
		Admin: middleware.Admin(tokens, log),
	}

	mux := http.NewServeMux()
	NewHealthHandler(time.Now(), store, log).Register(mux)
	NewUsersHandler(store, tokens, time.Hour, log).Register(mux, g)
	NewAdminsHandler(store, tokens, time.Hour, log).Register(mux, g)
	NewReportsHandler(store, log).Register(mux, g)
	NewJobsHandler(store, log).Register(mux, g)
	NewCompaniesHandler(store, log).Register(mux, g)
	NewResumesHandler(store, log).Register(mux, g)
	NewApplicationsHandler(store, log).Register(mux, g)
	NewMessagesHandler(store, log).Register(mux, g)

	return &testAPI{t: t, store: store, tokens: tokens, mux: mux}
}

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type response struct {
	Code int
	Env  envelope
}

// do sends a request with an optional bearer token and JSON body.
func (a *testAPI) do(method, path, token string, body any) response {
	a.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return response{Code: rec.Code, Env: env}
}

func data[T any](t *testing.T, r response) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(r.Env.Data, &out), string(r.Env.Data))
	return out
}

func signupBody(username, email string) map[string]string {
	return map[string]string{
		"first_name": "First " + username,
		"last_name":  "Last",
		"username":   username,
		"email":      email,
		"password":   testPassword,
		"birth_date": "1990-01-01",
	}
}

// signupUser registers a user through the API and returns it with a fresh token.
func (a *testAPI) signupUser(username string) (models.User, string) {
	a.t.Helper()
	res := a.do(http.MethodPost, "/users/signup", "", signupBody(username, username+"@example.com"))
	require.Equal(a.t, http.StatusCreated, res.Code, res.Env.Error)
	user := data[models.User](a.t, res)

	token, err := a.tokens.Issue(user.ID, models.RoleUser, time.Hour)
	require.NoError(a.t, err)
	return user, token
}

func (a *testAPI) signupAdmin(username string) (models.Admin, string) {
	a.t.Helper()
	res := a.do(http.MethodPost, "/admins/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": testPassword,
	})
	require.Equal(a.t, http.StatusCreated, res.Code, res.Env.Error)
	admin := data[models.Admin](a.t, res)

	token, err := a.tokens.Issue(admin.ID, models.RoleAdmin, time.Hour)
	require.NoError(a.t, err)
	return admin, token
}

func jobBody(title string) map[string]string {
	return map[string]string{
		"title":        title,
		"sector":       "engineering",
		"salary":       "100k",
		"location":     "Remote",
		"job_type":     "full-time",
		"requirements": "Go",
		"description":  "Build APIs",
		"benefits":     "Coffee",
	}
}

func (a *testAPI) postJob(token, title string) models.Job {
	a.t.Helper()
	res := a.do(http.MethodPost, "/jobs", token, jobBody(title))
	require.Equal(a.t, http.StatusCreated, res.Code, res.Env.Error)
	return data[models.Job](a.t, res)
}

func (a *testAPI) saveResume(token string) models.Resume {
	a.t.Helper()
	res := a.do(http.MethodPost, "/resume", token, map[string]any{
		"about":  "Gopher",
		"skills": []string{"go", "sql"},
		"education": []map[string]string{
			{"school": "State University", "degree": "BSc"},
		},
	})
	require.Equal(a.t, http.StatusOK, res.Code, res.Env.Error)
	return data[models.Resume](a.t, res)
}

func (a *testAPI) apply(token, jobID string) models.Application {
	a.t.Helper()
	res := a.do(http.MethodPost, "/apply", token, map[string]string{"job_id": jobID})
	require.Equal(a.t, http.StatusCreated, res.Code, res.Env.Error)
	return data[models.Application](a.t, res)
}

func page[T any](t *testing.T, r response) pagination.Result[T] {
	t.Helper()
	require.Equal(t, http.StatusOK, r.Code, r.Env.Error)
	return data[pagination.Result[T]](t, r)
}
