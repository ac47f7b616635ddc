// Package storagetest is a conformance suite every storage backend must pass.
package storagetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/pagination"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

// Factory returns an empty store. It is called once per subtest.
type Factory func(t *testing.T) storage.Store

// Run executes the suite against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("ConcurrentSignup", func(t *testing.T) { testConcurrentSignup(t, newStore(t)) })
	t.Run("Admins", func(t *testing.T) { testAdmins(t, newStore(t)) })
	t.Run("Jobs", func(t *testing.T) { testJobs(t, newStore(t)) })
	t.Run("Companies", func(t *testing.T) { testCompanies(t, newStore(t)) })
	t.Run("Resumes", func(t *testing.T) { testResumes(t, newStore(t)) })
	t.Run("Applications", func(t *testing.T) { testApplications(t, newStore(t)) })
	t.Run("Messages", func(t *testing.T) { testMessages(t, newStore(t)) })
	t.Run("Reports", func(t *testing.T) { testReports(t, newStore(t)) })
}

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func mustUser(t *testing.T, s storage.Store, name string) models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), models.User{
		FirstName:    "First " + name,
		LastName:     "Last",
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "hash-" + name,
	})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	return u
}

func mustJob(t *testing.T, s storage.Store, poster models.User, title string, at time.Time) models.Job {
	t.Helper()
	j, err := s.CreateJob(context.Background(), models.Job{
		Title:       title,
		Sector:      "IT",
		Salary:      "100k",
		Location:    "Remote",
		JobType:     "full-time",
		PostedBy:    poster.ID,
		CompanyName: poster.Username,
		DatePosted:  at,
	})
	require.NoError(t, err)
	return j
}

// missingID returns an id that is well-formed for the backend but unused.
func missingID(t *testing.T, s storage.Store) string {
	t.Helper()
	ctx := context.Background()
	u := mustUser(t, s, fmt.Sprintf("ghost%d", time.Now().UnixNano()))
	require.NoError(t, s.DeleteUser(ctx, u.ID))
	return u.ID
}

func testUsers(t *testing.T, s storage.Store) {
	ctx := context.Background()
	ann := mustUser(t, s, "ann")
	assert.False(t, ann.CreatedAt.IsZero())

	got, err := s.GetUser(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, ann.Username, got.Username)
	assert.Equal(t, "hash-ann", got.PasswordHash)

	for _, find := range []func() (models.User, error){
		func() (models.User, error) { return s.FindByUsername(ctx, "ann") },
		func() (models.User, error) { return s.FindByEmail(ctx, "ann@example.com") },
		func() (models.User, error) { return s.FindByUsernameOrEmail(ctx, "ann") },
		func() (models.User, error) { return s.FindByUsernameOrEmail(ctx, "ann@example.com") },
	} {
		u, err := find()
		require.NoError(t, err)
		assert.Equal(t, ann.ID, u.ID)
	}
	_, err = s.FindByUsernameOrEmail(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.CreateUser(ctx, models.User{Username: "ann", Email: "other@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	_, err = s.CreateUser(ctx, models.User{Username: "other", Email: "ann@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	bob := mustUser(t, s, "bob")
	taken := "ann"
	_, err = s.UpdateUser(ctx, bob.ID, models.UserPatch{Username: &taken})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	first := "Robert"
	updated, err := s.UpdateUser(ctx, bob.ID, models.UserPatch{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.FirstName)
	assert.Equal(t, "bob", updated.Username)

	require.NoError(t, s.SetPassword(ctx, bob.ID, "new-hash"))
	got, err = s.GetUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)

	require.NoError(t, s.DeleteUser(ctx, bob.ID))
	_, err = s.GetUser(ctx, bob.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.DeleteUser(ctx, bob.ID), storage.ErrNotFound)

	_, err = s.GetUser(ctx, "not-an-id")
	assert.ErrorIs(t, err, storage.ErrInvalidID)
}

func testConcurrentSignup(t *testing.T, s storage.Store) {
	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.CreateUser(context.Background(), models.User{
				Username:     "racer",
				Email:        fmt.Sprintf("racer%d@example.com", i),
				PasswordHash: "x",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, storage.ErrAlreadyExists):
				conflicts++
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}

func testAdmins(t *testing.T, s storage.Store) {
	ctx := context.Background()
	a, err := s.CreateAdmin(ctx, models.Admin{Username: "root", Email: "root@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = s.CreateAdmin(ctx, models.Admin{Username: "root2", Email: "root@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	_, err = s.CreateAdmin(ctx, models.Admin{Username: "root", Email: "root2@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	byName, err := s.FindAdminByUsernameOrEmail(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byName.ID)
	byEmail, err := s.FindAdminByUsernameOrEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byEmail.ID)

	got, err := s.GetAdmin(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "h", got.PasswordHash)

	// Admins and users live in separate collections.
	_, err = s.FindByUsernameOrEmail(ctx, "root")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testJobs(t *testing.T, s storage.Store) {
	ctx := context.Background()
	poster := mustUser(t, s, "poster")
	other := mustUser(t, s, "other")

	var ids []string
	for i := 0; i < 25; i++ {
		j := mustJob(t, s, poster, fmt.Sprintf("job-%02d", i), base.Add(time.Duration(i)*time.Minute))
		ids = append(ids, j.ID)
	}
	mustJob(t, s, other, "elsewhere", base.Add(time.Hour))

	page, err := s.ListJobs(ctx, storage.JobFilter{PostedBy: poster.ID}, pagination.Request{PageSize: 10, CurrentPage: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.TotalCount)
	require.Len(t, page.Items, 10)
	assert.Equal(t, ids[0], page.Items[0].ID)
	assert.Equal(t, 1, page.Items[0].Counter)
	assert.Equal(t, 10, page.Items[9].Counter)

	page, err = s.ListJobs(ctx, storage.JobFilter{PostedBy: poster.ID}, pagination.Request{PageSize: 10, CurrentPage: 3})
	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	assert.Equal(t, ids[20], page.Items[0].ID)
	assert.Equal(t, 21, page.Items[0].Counter)
	assert.Equal(t, 25, page.Items[4].Counter)

	page, err = s.ListJobs(ctx, storage.JobFilter{PostedBy: poster.ID}, pagination.Request{PageSize: 10, CurrentPage: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.TotalCount)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)

	all, err := s.ListJobs(ctx, storage.JobFilter{}, pagination.Request{PageSize: 10, CurrentPage: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(26), all.TotalCount)
	assert.Len(t, all.Items, 26)
	assert.Equal(t, 26, all.Items[25].Counter)

	_, err = s.ListJobs(ctx, storage.JobFilter{PostedBy: "bogus"}, pagination.Request{PageSize: 10, CurrentPage: 1})
	assert.ErrorIs(t, err, storage.ErrInvalidID)

	title := "renamed"
	updated, err := s.UpdateJob(ctx, ids[0], models.JobPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, poster.ID, updated.PostedBy)
	assert.Equal(t, "Remote", updated.Location)

	got, err := s.GetJob(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Zero(t, got.Counter)

	require.NoError(t, s.DeleteJob(ctx, ids[0]))
	_, err = s.GetJob(ctx, ids[0])
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.UpdateJob(ctx, ids[0], models.JobPatch{Title: &title})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.DeleteJob(ctx, ids[0]), storage.ErrNotFound)

	_, err = s.GetJob(ctx, "not-an-id")
	assert.ErrorIs(t, err, storage.ErrInvalidID)
}

func testCompanies(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "owner")
	other := mustUser(t, s, "other")

	c1, err := s.CreateCompany(ctx, models.Company{Title: "Acme", AboutUs: "a", NumberOfEmployees: 10, FoundedDate: "2001", UserID: owner.ID})
	require.NoError(t, err)
	_, err = s.CreateCompany(ctx, models.Company{Title: "Beta", AboutUs: "b", NumberOfEmployees: 3, FoundedDate: "2010", UserID: owner.ID})
	require.NoError(t, err)
	_, err = s.CreateCompany(ctx, models.Company{Title: "Other", AboutUs: "c", FoundedDate: "2015", UserID: other.ID})
	require.NoError(t, err)

	mine, err := s.ListCompanies(ctx, storage.CompanyFilter{UserID: owner.ID}, pagination.Request{PageSize: 10, CurrentPage: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), mine.TotalCount)
	require.Len(t, mine.Items, 2)
	assert.Equal(t, "Acme", mine.Items[0].Title)
	assert.Equal(t, 2, mine.Items[1].Counter)

	all, err := s.ListCompanies(ctx, storage.CompanyFilter{}, pagination.Request{PageSize: 2, CurrentPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.TotalCount)
	require.Len(t, all.Items, 1)
	assert.Equal(t, 3, all.Items[0].Counter)

	employees := 42
	updated, err := s.UpdateCompany(ctx, c1.ID, models.CompanyPatch{NumberOfEmployees: &employees})
	require.NoError(t, err)
	assert.Equal(t, 42, updated.NumberOfEmployees)
	assert.Equal(t, "Acme", updated.Title)

	require.NoError(t, s.DeleteCompany(ctx, c1.ID))
	_, err = s.GetCompany(ctx, c1.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testResumes(t *testing.T, s storage.Store) {
	ctx := context.Background()
	u := mustUser(t, s, "cv")

	_, err := s.GetResumeByUser(ctx, u.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	first, err := s.UpsertResume(ctx, u.ID, models.ResumeSections{
		About:     "hello",
		Skills:    []string{"go", "sql"},
		Education: []models.Education{{School: "MIT", Degree: "BSc"}},
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID, first.UserID)
	assert.Equal(t, []string{"go", "sql"}, first.Skills)

	second, err := s.UpsertResume(ctx, u.ID, models.ResumeSections{About: "updated", Hobbies: []string{"chess"}})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := s.GetResume(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", got.About)
	assert.Equal(t, []string{"chess"}, got.Hobbies)
	assert.Empty(t, got.Skills)
	assert.Empty(t, got.Education)

	byUser, err := s.GetResumeByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, byUser.ID)

	_, err = s.GetResume(ctx, missingID(t, s))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testApplications(t *testing.T, s storage.Store) {
	ctx := context.Background()
	poster := mustUser(t, s, "poster")
	applicant := mustUser(t, s, "applicant")
	second := mustUser(t, s, "second")
	job := mustJob(t, s, poster, "engineer", base)

	app, err := s.CreateApplication(ctx, models.Application{JobID: job.ID, UserID: applicant.ID, ResumeID: applicant.ID})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, app.Status)
	assert.False(t, app.DateApplied.IsZero())

	_, err = s.CreateApplication(ctx, models.Application{JobID: job.ID, UserID: applicant.ID, ResumeID: applicant.ID})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = s.CreateApplication(ctx, models.Application{JobID: job.ID, UserID: second.ID, ResumeID: second.ID})
	require.NoError(t, err)

	byJob, err := s.ListApplications(ctx, storage.ApplicationFilter{JobID: job.ID}, pagination.Request{PageSize: 10, CurrentPage: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byJob.TotalCount)
	require.Len(t, byJob.Items, 2)
	assert.Equal(t, app.ID, byJob.Items[0].ID)

	mine, err := s.ListApplications(ctx, storage.ApplicationFilter{UserID: applicant.ID}, pagination.Request{PageSize: 10, CurrentPage: 0})
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, 1, mine.Items[0].Counter)

	updated, err := s.UpdateApplicationStatus(ctx, app.ID, models.StatusInterview)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterview, updated.Status)

	require.NoError(t, s.DeleteApplication(ctx, app.ID))
	_, err = s.GetApplication(ctx, app.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// The pair is free again once the application is withdrawn.
	_, err = s.CreateApplication(ctx, models.Application{JobID: job.ID, UserID: applicant.ID, ResumeID: applicant.ID})
	assert.NoError(t, err)
}

func testMessages(t *testing.T, s storage.Store) {
	ctx := context.Background()
	poster := mustUser(t, s, "poster")
	applicant := mustUser(t, s, "applicant")
	job := mustJob(t, s, poster, "engineer", base)
	app, err := s.CreateApplication(ctx, models.Application{JobID: job.ID, UserID: applicant.ID, ResumeID: applicant.ID})
	require.NoError(t, err)

	var sent []models.Message
	for i := 0; i < 3; i++ {
		m, err := s.CreateMessage(ctx, models.Message{
			ApplicationID: app.ID,
			SenderID:      poster.ID,
			ReceiverID:    applicant.ID,
			Message:       fmt.Sprintf("msg %d", i),
			Timestamp:     base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
		assert.Equal(t, models.MessageUnread, m.Status)
		sent = append(sent, m)
	}
	_, err = s.CreateMessage(ctx, models.Message{ApplicationID: app.ID, SenderID: applicant.ID, ReceiverID: poster.ID, Message: "reply", Timestamp: base.Add(time.Minute)})
	require.NoError(t, err)

	thread, err := s.ListMessages(ctx, storage.MessageFilter{ApplicationID: app.ID}, pagination.Request{PageSize: 10, CurrentPage: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(4), thread.TotalCount)
	require.Len(t, thread.Items, 4)
	assert.Equal(t, "msg 0", thread.Items[0].Message)
	assert.Equal(t, "reply", thread.Items[3].Message)

	read, err := s.MarkMessageRead(ctx, sent[1].ID)
	require.NoError(t, err)
	assert.Equal(t, models.MessageRead, read.Status)

	unread, err := s.ListMessages(ctx, storage.MessageFilter{ReceiverID: applicant.ID, Status: models.MessageUnread}, pagination.Request{PageSize: 10, CurrentPage: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread.TotalCount)
	for _, m := range unread.Items {
		assert.NotEqual(t, sent[1].ID, m.ID)
	}

	inbox, err := s.ListMessages(ctx, storage.MessageFilter{ReceiverID: applicant.ID}, pagination.Request{PageSize: 2, CurrentPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), inbox.TotalCount)
	require.Len(t, inbox.Items, 1)
	assert.Equal(t, 3, inbox.Items[0].Counter)

	_, err = s.MarkMessageRead(ctx, missingID(t, s))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testReports(t *testing.T, s storage.Store) {
	ctx := context.Background()
	for i, at := range []time.Time{base.Add(-time.Hour), base, base.Add(time.Hour), base.Add(2 * time.Hour)} {
		_, err := s.CreateUser(ctx, models.User{
			Username:     fmt.Sprintf("r%d", i),
			Email:        fmt.Sprintf("r%d@example.com", i),
			PasswordHash: "x",
			CreatedAt:    at,
		})
		require.NoError(t, err)
	}
	window := storage.TimeRange{From: base, To: base.Add(2 * time.Hour)}

	n, err := s.CountUsers(ctx, window)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n, "range is half-open")

	poster, err := s.FindByUsername(ctx, "r0")
	require.NoError(t, err)
	job := mustJob(t, s, poster, "in range", base.Add(30*time.Minute))
	mustJob(t, s, poster, "too late", base.Add(3*time.Hour))

	n, err = s.CountJobs(ctx, window)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.CreateApplication(ctx, models.Application{JobID: job.ID, UserID: poster.ID, ResumeID: poster.ID, DateApplied: base.Add(time.Minute)})
	require.NoError(t, err)
	n, err = s.CountApplications(ctx, window)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.CountApplications(ctx, storage.TimeRange{From: base.Add(-48 * time.Hour), To: base.Add(-24 * time.Hour)})
	require.NoError(t, err)
	assert.Zero(t, n)
}
