package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/jobboard-be/internal/auth"
	"github.com/hongminglow/jobboard-be/internal/logging"
	"github.com/hongminglow/jobboard-be/internal/middleware"
	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/storage/postgres"
)

// TestAuthIntegration exercises signup, login and /users/me against a live Postgres.
func TestAuthIntegration(t *testing.T) {
	if os.Getenv("RUN_AUTH_INTEGRATION") != "true" {
		t.Skip("set RUN_AUTH_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := mustGetEnv(t, "DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	store, err := postgres.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer store.Close()

	tokens := auth.NewTokenManager(mustGetEnv(t, "SECRET_KEY"), "jobboard-integration")
	log := logging.Discard()
	mux := http.NewServeMux()
	NewUsersHandler(store, tokens, time.Hour, log).Register(mux, Guards{
		User:  middleware.User(tokens, log),
		Admin: middleware.Admin(tokens, log),
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	username := fmt.Sprintf("apitest_%d", time.Now().UnixNano())
	email := username + "@example.com"
	password := fmt.Sprintf("Pass!%d", time.Now().UnixNano())

	var user models.User
	call(t, ts.URL+"/users/signup", "", map[string]string{
		"first_name": "Api",
		"last_name":  "Test",
		"username":   username,
		"email":      email,
		"password":   password,
		"birth_date": "1990-01-01",
	}, http.StatusCreated, &user)
	if user.Username != username || user.Email != email {
		t.Fatalf("signup mismatch: got %+v", user)
	}
	t.Cleanup(func() { _ = store.DeleteUser(context.Background(), user.ID) })

	var loggedIn struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	call(t, ts.URL+"/users/login", "", map[string]string{
		"username": username,
		"password": password,
	}, http.StatusOK, &loggedIn)
	if loggedIn.User.ID != user.ID {
		t.Fatalf("login returned wrong user id: want %s got %s", user.ID, loggedIn.User.ID)
	}
	if strings.TrimSpace(loggedIn.Token) == "" {
		t.Fatal("login response missing token")
	}

	var me models.User
	call(t, ts.URL+"/users/me", loggedIn.Token, nil, http.StatusOK, &me)
	if me.ID != user.ID {
		t.Fatalf("token subject resolved to %s, want %s", me.ID, user.ID)
	}

	t.Logf("created user %s (id=%s) and successfully logged in", username, user.ID)
}

// call performs a request and decodes the envelope data into out.
func call(t *testing.T, url, token string, payload any, wantStatus int, out any) {
	t.Helper()
	method := http.MethodGet
	var body bytes.Buffer
	if payload != nil {
		method = http.MethodPost
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env struct {
		Error string          `json:"error"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s status = %d (%s)", method, url, resp.StatusCode, env.Error)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func mustGetEnv(t *testing.T, key string) string {
	t.Helper()
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		t.Fatalf("%s is required", key)
	}
	return val
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
		"../../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
