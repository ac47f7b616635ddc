package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/jobboard-be/internal/models"
)

func TestCreateJob(t *testing.T) {
	api := newTestAPI(t)
	poster, token := api.signupUser("acme")

	res := api.do(http.MethodPost, "/jobs", "", jobBody("Gopher"))
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	body := jobBody("Gopher")
	delete(body, "salary")
	res = api.do(http.MethodPost, "/jobs", token, body)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "missing fields: salary", res.Env.Error)

	job := api.postJob(token, "Gopher")
	assert.Equal(t, poster.ID, job.PostedBy)
	assert.Equal(t, "acme", job.CompanyName)
	assert.False(t, job.DatePosted.IsZero())

	res = api.do(http.MethodGet, "/jobs/"+job.ID, "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Gopher", data[models.Job](t, res).Title)
}

func TestListJobs_Pagination(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.signupUser("acme")
	for i := 1; i <= 25; i++ {
		api.postJob(token, fmt.Sprintf("Job %02d", i))
	}

	tests := []struct {
		query    string
		items    int
		first    int
		firstJob string
	}{
		{query: "page_size=10&current_page=1", items: 10, first: 1, firstJob: "Job 01"},
		{query: "page_size=10&current_page=3", items: 5, first: 21, firstJob: "Job 21"},
		{query: "page_size=10&current_page=5", items: 0},
		{query: "page_size=10&current_page=0", items: 25, first: 1, firstJob: "Job 01"},
		{query: "page_size=abc&current_page=-4", items: 10, first: 1, firstJob: "Job 01"},
	}
	for _, tt := range tests {
		got := page[models.Job](t, api.do(http.MethodGet, "/jobs?"+tt.query, "", nil))
		assert.EqualValues(t, 25, got.TotalCount, tt.query)
		require.Len(t, got.Items, tt.items, tt.query)
		if tt.items > 0 {
			assert.Equal(t, tt.first, got.Items[0].Counter, tt.query)
			assert.Equal(t, tt.firstJob, got.Items[0].Title, tt.query)
		}
	}
}

func TestListJobs_HugePageIsEmpty(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.signupUser("acme")
	for i := 1; i <= 3; i++ {
		api.postJob(token, fmt.Sprintf("Job %d", i))
	}

	for _, query := range []string{
		"page_size=4611686018427387904&current_page=3",
		"page_size=9223372036854775807&current_page=9223372036854775807",
	} {
		got := page[models.Job](t, api.do(http.MethodGet, "/jobs?"+query, "", nil))
		assert.EqualValues(t, 3, got.TotalCount, query)
		assert.NotNil(t, got.Items, query)
		assert.Empty(t, got.Items, query)
	}
}

func TestListJobs_ByPoster(t *testing.T) {
	api := newTestAPI(t)
	alice, aliceToken := api.signupUser("alice")
	_, bobToken := api.signupUser("bob")
	api.postJob(aliceToken, "A1")
	api.postJob(aliceToken, "A2")
	api.postJob(bobToken, "B1")

	got := page[models.Job](t, api.do(http.MethodGet, "/jobs/user?user_id="+alice.ID, "", nil))
	assert.EqualValues(t, 2, got.TotalCount)

	mine := page[models.Job](t, api.do(http.MethodGet, "/jobs/mine", bobToken, nil))
	require.Len(t, mine.Items, 1)
	assert.Equal(t, "B1", mine.Items[0].Title)

	res := api.do(http.MethodGet, "/jobs/user", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "missing fields: user_id", res.Env.Error)

	res = api.do(http.MethodGet, "/jobs/user?user_id=not-an-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	_, carolToken := api.signupUser("carol")
	empty := page[models.Job](t, api.do(http.MethodGet, "/jobs/mine", carolToken, nil))
	assert.Zero(t, empty.TotalCount)
	assert.Empty(t, empty.Items)
}

func TestUpdateDeleteJob_Ownership(t *testing.T) {
	api := newTestAPI(t)
	_, owner := api.signupUser("owner")
	_, intruder := api.signupUser("intruder")
	job := api.postJob(owner, "Original")

	res := api.do(http.MethodPut, "/jobs/"+job.ID, intruder, map[string]string{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, res.Code)
	res = api.do(http.MethodDelete, "/jobs/"+job.ID, intruder, nil)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = api.do(http.MethodPut, "/jobs/"+job.ID, owner, map[string]string{"title": "Renamed"})
	require.Equal(t, http.StatusOK, res.Code, res.Env.Error)
	updated := data[models.Job](t, res)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, job.Salary, updated.Salary)

	res = api.do(http.MethodDelete, "/jobs/"+job.ID, owner, nil)
	require.Equal(t, http.StatusOK, res.Code)

	res = api.do(http.MethodGet, "/jobs/"+job.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "job not found", res.Env.Error)
}

func TestGetJob_InvalidID(t *testing.T) {
	api := newTestAPI(t)
	res := api.do(http.MethodGet, "/jobs/zzz", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "invalid id", res.Env.Error)
}
