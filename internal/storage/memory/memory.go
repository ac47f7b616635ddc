// Package memory is an in-process storage backend for development and tests.
// A single lock guards every table, so uniqueness checks and inserts are atomic.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/pagination"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users        *table[models.User]
	admins       *table[models.Admin]
	jobs         *table[models.Job]
	companies    *table[models.Company]
	resumes      *table[models.Resume]
	applications *table[models.Application]
	messages     *table[models.Message]
}

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the time source used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		now:          time.Now,
		users:        newTable[models.User](),
		admins:       newTable[models.Admin](),
		jobs:         newTable[models.Job](),
		companies:    newTable[models.Company](),
		resumes:      newTable[models.Resume](),
		applications: newTable[models.Application](),
		messages:     newTable[models.Message](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() {}

func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return storage.ErrInvalidID
	}
	return nil
}

func checkFilterIDs(ids ...string) error {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if err := checkID(id); err != nil {
			return err
		}
	}
	return nil
}

// Users

func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.users.find(func(u models.User) bool {
		return u.Username == user.Username || u.Email == user.Email
	}); taken {
		return models.User{}, storage.ErrAlreadyExists
	}
	user.ID = newID()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.stamp()
	}
	user.UpdatedAt = user.CreatedAt
	s.users.insert(user.ID, user)
	return user, nil
}

func (s *Store) GetUser(_ context.Context, id string) (models.User, error) {
	if err := checkID(id); err != nil {
		return models.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users.get(id)
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) FindByUsername(_ context.Context, username string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return u.Username == username })
}

func (s *Store) FindByEmail(_ context.Context, email string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return u.Email == email })
}

func (s *Store) FindByUsernameOrEmail(_ context.Context, identifier string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return u.Username == identifier || u.Email == identifier })
}

func (s *Store) findUser(match func(models.User) bool) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users.find(match)
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) UpdateUser(_ context.Context, id string, patch models.UserPatch) (models.User, error) {
	if err := checkID(id); err != nil {
		return models.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users.get(id)
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	patch.Apply(&u)
	if _, taken := s.users.find(func(other models.User) bool {
		return other.ID != id && (other.Username == u.Username || other.Email == u.Email)
	}); taken {
		return models.User{}, storage.ErrAlreadyExists
	}
	u.UpdatedAt = s.stamp()
	s.users.insert(id, u)
	return u, nil
}

func (s *Store) SetPassword(_ context.Context, id, passwordHash string) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users.get(id)
	if !ok {
		return storage.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = s.stamp()
	s.users.insert(id, u)
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.users.remove(id) {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) CountUsers(_ context.Context, r storage.TimeRange) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.count(func(u models.User) bool { return r.Contains(u.CreatedAt) }), nil
}

// Admins

func (s *Store) CreateAdmin(_ context.Context, admin models.Admin) (models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.admins.find(func(a models.Admin) bool {
		return a.Username == admin.Username || a.Email == admin.Email
	}); taken {
		return models.Admin{}, storage.ErrAlreadyExists
	}
	admin.ID = newID()
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = s.stamp()
	}
	s.admins.insert(admin.ID, admin)
	return admin, nil
}

func (s *Store) GetAdmin(_ context.Context, id string) (models.Admin, error) {
	if err := checkID(id); err != nil {
		return models.Admin{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.admins.get(id)
	if !ok {
		return models.Admin{}, storage.ErrNotFound
	}
	return a, nil
}

func (s *Store) FindAdminByUsernameOrEmail(_ context.Context, identifier string) (models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.admins.find(func(a models.Admin) bool { return a.Username == identifier || a.Email == identifier })
	if !ok {
		return models.Admin{}, storage.ErrNotFound
	}
	return a, nil
}

// Jobs

func (s *Store) CreateJob(_ context.Context, job models.Job) (models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.ID = newID()
	job.Counter = 0
	if job.DatePosted.IsZero() {
		job.DatePosted = s.stamp()
	}
	s.jobs.insert(job.ID, job)
	return job, nil
}

func (s *Store) GetJob(_ context.Context, id string) (models.Job, error) {
	if err := checkID(id); err != nil {
		return models.Job{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs.get(id)
	if !ok {
		return models.Job{}, storage.ErrNotFound
	}
	return j, nil
}

func (s *Store) ListJobs(_ context.Context, filter storage.JobFilter, page pagination.Request) (pagination.Result[models.Job], error) {
	if err := checkFilterIDs(filter.PostedBy); err != nil {
		return pagination.Result[models.Job]{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.jobs.filter(func(j models.Job) bool {
		return filter.PostedBy == "" || j.PostedBy == filter.PostedBy
	})
	return pagination.Paginate(int64(len(all)), page, all), nil
}

func (s *Store) UpdateJob(_ context.Context, id string, patch models.JobPatch) (models.Job, error) {
	if err := checkID(id); err != nil {
		return models.Job{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs.get(id)
	if !ok {
		return models.Job{}, storage.ErrNotFound
	}
	patch.Apply(&j)
	s.jobs.insert(id, j)
	return j, nil
}

func (s *Store) DeleteJob(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.jobs.remove(id) {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) CountJobs(_ context.Context, r storage.TimeRange) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobs.count(func(j models.Job) bool { return r.Contains(j.DatePosted) }), nil
}

// Companies

func (s *Store) CreateCompany(_ context.Context, company models.Company) (models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	company.ID = newID()
	company.Counter = 0
	if company.CreatedAt.IsZero() {
		company.CreatedAt = s.stamp()
	}
	s.companies.insert(company.ID, company)
	return company, nil
}

func (s *Store) GetCompany(_ context.Context, id string) (models.Company, error) {
	if err := checkID(id); err != nil {
		return models.Company{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.companies.get(id)
	if !ok {
		return models.Company{}, storage.ErrNotFound
	}
	return c, nil
}

func (s *Store) ListCompanies(_ context.Context, filter storage.CompanyFilter, page pagination.Request) (pagination.Result[models.Company], error) {
	if err := checkFilterIDs(filter.UserID); err != nil {
		return pagination.Result[models.Company]{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.companies.filter(func(c models.Company) bool {
		return filter.UserID == "" || c.UserID == filter.UserID
	})
	return pagination.Paginate(int64(len(all)), page, all), nil
}

func (s *Store) UpdateCompany(_ context.Context, id string, patch models.CompanyPatch) (models.Company, error) {
	if err := checkID(id); err != nil {
		return models.Company{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.companies.get(id)
	if !ok {
		return models.Company{}, storage.ErrNotFound
	}
	patch.Apply(&c)
	s.companies.insert(id, c)
	return c, nil
}

func (s *Store) DeleteCompany(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.companies.remove(id) {
		return storage.ErrNotFound
	}
	return nil
}

// Resumes

func (s *Store) UpsertResume(_ context.Context, userID string, sections models.ResumeSections) (models.Resume, error) {
	if err := checkID(userID); err != nil {
		return models.Resume{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sections.Normalize()
	r, ok := s.resumes.find(func(r models.Resume) bool { return r.UserID == userID })
	if !ok {
		r = models.Resume{ID: newID(), UserID: userID}
	}
	r.ResumeSections = sections
	r.UpdatedAt = s.stamp()
	s.resumes.insert(r.ID, r)
	return r, nil
}

func (s *Store) GetResume(_ context.Context, id string) (models.Resume, error) {
	if err := checkID(id); err != nil {
		return models.Resume{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resumes.get(id)
	if !ok {
		return models.Resume{}, storage.ErrNotFound
	}
	return r, nil
}

func (s *Store) GetResumeByUser(_ context.Context, userID string) (models.Resume, error) {
	if err := checkID(userID); err != nil {
		return models.Resume{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resumes.find(func(r models.Resume) bool { return r.UserID == userID })
	if !ok {
		return models.Resume{}, storage.ErrNotFound
	}
	return r, nil
}

// Applications

func (s *Store) CreateApplication(_ context.Context, app models.Application) (models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.applications.find(func(a models.Application) bool {
		return a.JobID == app.JobID && a.UserID == app.UserID
	}); dup {
		return models.Application{}, storage.ErrAlreadyExists
	}
	app.ID = newID()
	app.Counter = 0
	if app.Status == "" {
		app.Status = models.StatusPending
	}
	if app.DateApplied.IsZero() {
		app.DateApplied = s.stamp()
	}
	app.UpdatedAt = app.DateApplied
	s.applications.insert(app.ID, app)
	return app, nil
}

func (s *Store) GetApplication(_ context.Context, id string) (models.Application, error) {
	if err := checkID(id); err != nil {
		return models.Application{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.applications.get(id)
	if !ok {
		return models.Application{}, storage.ErrNotFound
	}
	return a, nil
}

func (s *Store) ListApplications(_ context.Context, filter storage.ApplicationFilter, page pagination.Request) (pagination.Result[models.Application], error) {
	if err := checkFilterIDs(filter.JobID, filter.UserID); err != nil {
		return pagination.Result[models.Application]{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.applications.filter(func(a models.Application) bool {
		return (filter.JobID == "" || a.JobID == filter.JobID) &&
			(filter.UserID == "" || a.UserID == filter.UserID)
	})
	return pagination.Paginate(int64(len(all)), page, all), nil
}

func (s *Store) UpdateApplicationStatus(_ context.Context, id string, status models.ApplicationStatus) (models.Application, error) {
	if err := checkID(id); err != nil {
		return models.Application{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.applications.get(id)
	if !ok {
		return models.Application{}, storage.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = s.stamp()
	s.applications.insert(id, a)
	return a, nil
}

func (s *Store) DeleteApplication(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.applications.remove(id) {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) CountApplications(_ context.Context, r storage.TimeRange) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applications.count(func(a models.Application) bool { return r.Contains(a.DateApplied) }), nil
}

// Messages

func (s *Store) CreateMessage(_ context.Context, msg models.Message) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg.ID = newID()
	msg.Counter = 0
	if msg.Status == "" {
		msg.Status = models.MessageUnread
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.stamp()
	}
	s.messages.insert(msg.ID, msg)
	return msg, nil
}

func (s *Store) GetMessage(_ context.Context, id string) (models.Message, error) {
	if err := checkID(id); err != nil {
		return models.Message{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.messages.get(id)
	if !ok {
		return models.Message{}, storage.ErrNotFound
	}
	return m, nil
}

func (s *Store) ListMessages(_ context.Context, filter storage.MessageFilter, page pagination.Request) (pagination.Result[models.Message], error) {
	if err := checkFilterIDs(filter.ApplicationID, filter.ReceiverID); err != nil {
		return pagination.Result[models.Message]{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.messages.filter(func(m models.Message) bool {
		return (filter.ApplicationID == "" || m.ApplicationID == filter.ApplicationID) &&
			(filter.ReceiverID == "" || m.ReceiverID == filter.ReceiverID) &&
			(filter.Status == "" || m.Status == filter.Status)
	})
	return pagination.Paginate(int64(len(all)), page, all), nil
}

func (s *Store) MarkMessageRead(_ context.Context, id string) (models.Message, error) {
	if err := checkID(id); err != nil {
		return models.Message{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages.get(id)
	if !ok {
		return models.Message{}, storage.ErrNotFound
	}
	m.Status = models.MessageRead
	s.messages.insert(id, m)
	return m, nil
}
