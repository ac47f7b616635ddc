package handlers

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/models/dto"
)

func TestSignupLoginResolvesSubject(t *testing.T) {
	api := newTestAPI(t)
	created, _ := api.signupUser("alice")
	assert.Equal(t, "alice", created.Username)
	assert.NotEmpty(t, created.ID)

	for _, body := range []map[string]string{
		{"username": "alice", "password": testPassword},
		{"email": "alice@example.com", "password": testPassword},
	} {
		res := api.do(http.MethodPost, "/users/login", "", body)
		require.Equal(t, http.StatusOK, res.Code, res.Env.Error)
		login := data[dto.LoginResponse](t, res)
		require.NotEmpty(t, login.Token)
		assert.Equal(t, created.ID, login.User.ID)

		claims, err := api.tokens.Verify(login.Token)
		require.NoError(t, err)
		assert.Equal(t, created.ID, claims.Identity().Subject)
		assert.Equal(t, models.RoleUser, claims.Identity().Role)

		me := api.do(http.MethodGet, "/users/me", login.Token, nil)
		require.Equal(t, http.StatusOK, me.Code)
		assert.Equal(t, created.ID, data[models.User](t, me).ID)
	}
}

func TestSignup_Validation(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(http.MethodPost, "/users/signup", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "invalid JSON payload", res.Env.Error)

	res = api.do(http.MethodPost, "/users/signup", "", map[string]string{"username": "bob"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "missing fields: first_name, last_name, email, password, birth_date", res.Env.Error)

	res = api.do(http.MethodPost, "/users/signup", "", signupBody("bob", "not-an-email"))
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "email is not a valid email address", res.Env.Error)
}

func TestSignup_Duplicates(t *testing.T) {
	api := newTestAPI(t)
	api.signupUser("carol")

	res := api.do(http.MethodPost, "/users/signup", "", signupBody("carol", "other@example.com"))
	assert.Equal(t, http.StatusConflict, res.Code)
	assert.Equal(t, "username already exists", res.Env.Error)

	res = api.do(http.MethodPost, "/users/signup", "", signupBody("carol2", "carol@example.com"))
	assert.Equal(t, http.StatusConflict, res.Code)
	assert.Equal(t, "email already exists", res.Env.Error)

	res = api.do(http.MethodPost, "/users/signup", "", signupBody("carol3", " Carol@Example.COM "))
	assert.Equal(t, http.StatusConflict, res.Code)
	assert.Equal(t, "email already exists", res.Env.Error)
}

func TestSignup_EmailIsCaseFolded(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(http.MethodPost, "/users/signup", "", signupBody("erin", "Erin@Example.com"))
	require.Equal(t, http.StatusCreated, res.Code, res.Env.Error)
	assert.Equal(t, "erin@example.com", data[models.User](t, res).Email)

	for _, email := range []string{"erin@example.com", "ERIN@EXAMPLE.COM"} {
		res = api.do(http.MethodPost, "/users/login", "", map[string]string{"email": email, "password": testPassword})
		assert.Equal(t, http.StatusOK, res.Code, email)
	}
	res = api.do(http.MethodPost, "/users/login", "", map[string]string{"username": "Erin@example.com", "password": testPassword})
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestSignup_ConcurrentDuplicates(t *testing.T) {
	api := newTestAPI(t)
	const attempts = 8

	codes := make(chan int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := api.do(http.MethodPost, "/users/signup", "", signupBody("racer", "racer@example.com"))
			codes <- res.Code
		}()
	}
	wg.Wait()
	close(codes)

	counts := map[int]int{}
	for code := range codes {
		counts[code]++
	}
	assert.Equal(t, map[int]int{http.StatusCreated: 1, http.StatusConflict: attempts - 1}, counts)
}

func TestLogin_Rejections(t *testing.T) {
	api := newTestAPI(t)
	api.signupUser("dave")

	res := api.do(http.MethodPost, "/users/login", "", map[string]string{"username": "dave", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "invalid credentials", res.Env.Error)

	res = api.do(http.MethodPost, "/users/login", "", map[string]string{"username": "nobody", "password": testPassword})
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "invalid credentials", res.Env.Error)

	res = api.do(http.MethodPost, "/users/login", "", map[string]string{"password": testPassword})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestLogout(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.signupUser("erin")

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/users/logout", "", nil).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodPost, "/users/logout", token, nil).Code)
	// Stateless tokens outlive logout.
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/users/me", token, nil).Code)
}

func TestAdminTokenOnUserRoute(t *testing.T) {
	api := newTestAPI(t)
	_, adminToken := api.signupAdmin("root")

	res := api.do(http.MethodGet, "/users/me", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, "forbidden", res.Env.Error)
}
