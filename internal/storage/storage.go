package storage

import (
	"context"
	"errors"
	"time"

	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/pagination"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInvalidID indicates an id that cannot belong to any record of this backend.
var ErrInvalidID = errors.New("invalid id")

// TimeRange is a half-open [From, To) interval used by reports.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

// UserStore persists job-board users. Username and email are unique.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByUsernameOrEmail(ctx context.Context, identifier string) (models.User, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (models.User, error)
	SetPassword(ctx context.Context, id, passwordHash string) error
	DeleteUser(ctx context.Context, id string) error
	CountUsers(ctx context.Context, r TimeRange) (int64, error)
}

// AdminStore persists operator accounts. Username and email are unique.
type AdminStore interface {
	CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error)
	GetAdmin(ctx context.Context, id string) (models.Admin, error)
	FindAdminByUsernameOrEmail(ctx context.Context, identifier string) (models.Admin, error)
}

// JobFilter narrows job listings. Zero value matches every job.
type JobFilter struct {
	PostedBy string
}

type JobStore interface {
	CreateJob(ctx context.Context, job models.Job) (models.Job, error)
	GetJob(ctx context.Context, id string) (models.Job, error)
	ListJobs(ctx context.Context, filter JobFilter, page pagination.Request) (pagination.Result[models.Job], error)
	UpdateJob(ctx context.Context, id string, patch models.JobPatch) (models.Job, error)
	DeleteJob(ctx context.Context, id string) error
	CountJobs(ctx context.Context, r TimeRange) (int64, error)
}

// CompanyFilter narrows company listings. Zero value matches every company.
type CompanyFilter struct {
	UserID string
}

type CompanyStore interface {
	CreateCompany(ctx context.Context, company models.Company) (models.Company, error)
	GetCompany(ctx context.Context, id string) (models.Company, error)
	ListCompanies(ctx context.Context, filter CompanyFilter, page pagination.Request) (pagination.Result[models.Company], error)
	UpdateCompany(ctx context.Context, id string, patch models.CompanyPatch) (models.Company, error)
	DeleteCompany(ctx context.Context, id string) error
}

// ResumeStore keeps at most one resume per user.
type ResumeStore interface {
	UpsertResume(ctx context.Context, userID string, sections models.ResumeSections) (models.Resume, error)
	GetResume(ctx context.Context, id string) (models.Resume, error)
	GetResumeByUser(ctx context.Context, userID string) (models.Resume, error)
}

// ApplicationFilter narrows application listings. Zero value matches everything.
type ApplicationFilter struct {
	JobID  string
	UserID string
}

// ApplicationStore keeps at most one application per (job, user) pair.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, app models.Application) (models.Application, error)
	GetApplication(ctx context.Context, id string) (models.Application, error)
	ListApplications(ctx context.Context, filter ApplicationFilter, page pagination.Request) (pagination.Result[models.Application], error)
	UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (models.Application, error)
	DeleteApplication(ctx context.Context, id string) error
	CountApplications(ctx context.Context, r TimeRange) (int64, error)
}

// MessageFilter narrows message listings. Empty fields are ignored.
type MessageFilter struct {
	ApplicationID string
	ReceiverID    string
	Status        models.MessageStatus
}

type MessageStore interface {
	CreateMessage(ctx context.Context, msg models.Message) (models.Message, error)
	GetMessage(ctx context.Context, id string) (models.Message, error)
	ListMessages(ctx context.Context, filter MessageFilter, page pagination.Request) (pagination.Result[models.Message], error)
	MarkMessageRead(ctx context.Context, id string) (models.Message, error)
}

// Store is the full persistence surface handed to the HTTP layer.
type Store interface {
	UserStore
	AdminStore
	JobStore
	CompanyStore
	ResumeStore
	ApplicationStore
	MessageStore

	Ping(ctx context.Context) error
	Close()
}
