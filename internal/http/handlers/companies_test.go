package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/jobboard-be/internal/models"
)

func companyBody(title string) map[string]any {
	return map[string]any{
		"title":               title,
		"about_us":            "We build things",
		"number_of_employees": 42,
		"founded_date":        "2010-05-01",
	}
}

func TestCompanies(t *testing.T) {
	api := newTestAPI(t)
	owner, ownerToken := api.signupUser("owner")
	_, otherToken := api.signupUser("other")

	res := api.do(http.MethodPost, "/companies", ownerToken, map[string]any{"title": "Acme"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "missing fields: about_us, founded_date", res.Env.Error)

	res = api.do(http.MethodPost, "/companies", ownerToken, companyBody("Acme"))
	require.Equal(t, http.StatusCreated, res.Code, res.Env.Error)
	acme := data[models.Company](t, res)
	assert.Equal(t, owner.ID, acme.UserID)
	assert.Equal(t, 42, acme.NumberOfEmployees)

	res = api.do(http.MethodPost, "/companies", otherToken, companyBody("Globex"))
	require.Equal(t, http.StatusCreated, res.Code)

	all := page[models.Company](t, api.do(http.MethodGet, "/companies", "", nil))
	assert.EqualValues(t, 2, all.TotalCount)
	assert.Equal(t, []int{1, 2}, []int{all.Items[0].Counter, all.Items[1].Counter})

	byUser := page[models.Company](t, api.do(http.MethodGet, "/companies/user/"+owner.ID, "", nil))
	require.Len(t, byUser.Items, 1)
	assert.Equal(t, "Acme", byUser.Items[0].Title)

	mine := page[models.Company](t, api.do(http.MethodGet, "/companies/mine", otherToken, nil))
	require.Len(t, mine.Items, 1)
	assert.Equal(t, "Globex", mine.Items[0].Title)

	res = api.do(http.MethodGet, "/companies/"+acme.ID, "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Acme", data[models.Company](t, res).Title)

	res = api.do(http.MethodPut, "/companies/"+acme.ID, otherToken, map[string]any{"title": "Stolen"})
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = api.do(http.MethodPut, "/companies/"+acme.ID, ownerToken, map[string]any{"number_of_employees": 50})
	require.Equal(t, http.StatusOK, res.Code, res.Env.Error)
	updated := data[models.Company](t, res)
	assert.Equal(t, 50, updated.NumberOfEmployees)
	assert.Equal(t, "Acme", updated.Title)

	res = api.do(http.MethodPut, "/companies/"+acme.ID, ownerToken, map[string]any{"number_of_employees": -1})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	assert.Equal(t, http.StatusForbidden, api.do(http.MethodDelete, "/companies/"+acme.ID, otherToken, nil).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodDelete, "/companies/"+acme.ID, ownerToken, nil).Code)

	res = api.do(http.MethodGet, "/companies/"+acme.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "company not found", res.Env.Error)
}
