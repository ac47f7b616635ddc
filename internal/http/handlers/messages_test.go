package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/jobboard-be/internal/models"
)

type thread struct {
	posterID, applicantID       string
	posterToken, applicantToken string
	outsiderToken               string
	app                         models.Application
}

func newThread(t *testing.T, api *testAPI) thread {
	t.Helper()
	poster, posterToken := api.signupUser("poster")
	applicant, applicantToken := api.signupUser("applicant")
	_, outsiderToken := api.signupUser("outsider")
	api.saveResume(applicantToken)
	job := api.postJob(posterToken, "Gopher")
	return thread{
		posterID:       poster.ID,
		applicantID:    applicant.ID,
		posterToken:    posterToken,
		applicantToken: applicantToken,
		outsiderToken:  outsiderToken,
		app:            api.apply(applicantToken, job.ID),
	}
}

func TestSendMessage(t *testing.T) {
	api := newTestAPI(t)
	th := newThread(t, api)
	sendPath := "/messages/application/" + th.app.ID + "/send"

	res := api.do(http.MethodPost, sendPath, th.applicantToken, map[string]string{"message": "Hi, any update?"})
	require.Equal(t, http.StatusCreated, res.Code, res.Env.Error)
	sent := data[models.Message](t, res)
	assert.Equal(t, th.applicantID, sent.SenderID)
	assert.Equal(t, th.posterID, sent.ReceiverID)
	assert.Equal(t, models.MessageUnread, sent.Status)

	res = api.do(http.MethodPost, sendPath, th.posterToken, map[string]string{"message": "Soon", "receiver_id": th.applicantID})
	require.Equal(t, http.StatusCreated, res.Code, res.Env.Error)

	res = api.do(http.MethodPost, sendPath, th.posterToken, map[string]string{"message": "Self note", "receiver_id": th.posterID})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = api.do(http.MethodPost, sendPath, th.applicantToken, map[string]string{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "message content is missing", res.Env.Error)

	res = api.do(http.MethodPost, sendPath, th.outsiderToken, map[string]string{"message": "Let me in"})
	assert.Equal(t, http.StatusForbidden, res.Code)

	msgs := page[models.Message](t, api.do(http.MethodGet, "/messages/application/"+th.app.ID, th.posterToken, nil))
	require.Len(t, msgs.Items, 2)
	assert.Equal(t, "Hi, any update?", msgs.Items[0].Message)
	assert.Equal(t, "Soon", msgs.Items[1].Message)

	res = api.do(http.MethodGet, "/messages/application/"+th.app.ID, th.outsiderToken, nil)
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestInboxAndMarkRead(t *testing.T) {
	api := newTestAPI(t)
	th := newThread(t, api)
	sendPath := "/messages/application/" + th.app.ID + "/send"
	for _, text := range []string{"one", "two"} {
		res := api.do(http.MethodPost, sendPath, th.applicantToken, map[string]string{"message": text})
		require.Equal(t, http.StatusCreated, res.Code)
	}

	inbox := page[models.Message](t, api.do(http.MethodGet, "/messages/user/messages", th.posterToken, nil))
	require.Len(t, inbox.Items, 2)
	first := inbox.Items[0]

	res := api.do(http.MethodPatch, "/messages/"+first.ID+"/read", th.applicantToken, nil)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = api.do(http.MethodPatch, "/messages/"+first.ID+"/read", th.posterToken, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Env.Error)
	assert.Equal(t, models.MessageRead, data[models.Message](t, res).Status)

	unread := page[models.Message](t, api.do(http.MethodGet, "/messages/user/messages?status=unread", th.posterToken, nil))
	require.Len(t, unread.Items, 1)
	assert.Equal(t, "two", unread.Items[0].Message)

	res = api.do(http.MethodGet, "/messages/user/messages?status=archived", th.posterToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	empty := page[models.Message](t, api.do(http.MethodGet, "/messages/user/messages", th.outsiderToken, nil))
	assert.Zero(t, empty.TotalCount)
}
