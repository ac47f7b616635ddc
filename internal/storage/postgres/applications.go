package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/pagination"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

const applicationColumns = `id, job_id, user_id, resume_id, status, date_applied, updated_at`

// CreateApplication inserts an application. A second one for the same job and
// user violates the unique index and yields ErrAlreadyExists.
func (s *Store) CreateApplication(ctx context.Context, app models.Application) (models.Application, error) {
	if err := checkID(app.JobID, app.UserID, app.ResumeID); err != nil {
		return models.Application{}, err
	}
	if app.Status == "" {
		app.Status = models.StatusPending
	}
	if app.DateApplied.IsZero() {
		app.DateApplied = s.stamp()
	}
	const query = `
		INSERT INTO job_applications (id, job_id, user_id, resume_id, status, date_applied, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + applicationColumns
	row := s.pool.QueryRow(ctx, query, newID(), app.JobID, app.UserID, app.ResumeID, string(app.Status), app.DateApplied)
	return scanApplication(row)
}

func (s *Store) GetApplication(ctx context.Context, id string) (models.Application, error) {
	if err := checkID(id); err != nil {
		return models.Application{}, err
	}
	return scanApplication(s.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM job_applications WHERE id = $1`, id))
}

func (s *Store) ListApplications(ctx context.Context, filter storage.ApplicationFilter, page pagination.Request) (pagination.Result[models.Application], error) {
	for _, id := range []string{filter.JobID, filter.UserID} {
		if id == "" {
			continue
		}
		if err := checkID(id); err != nil {
			return pagination.Result[models.Application]{}, err
		}
	}
	var w where
	w.eq("job_id", filter.JobID)
	w.eq("user_id", filter.UserID)
	return listPage[models.Application](ctx, s, "job_applications", applicationColumns, "date_applied, id", &w, page, scanApplication)
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (models.Application, error) {
	if err := checkID(id); err != nil {
		return models.Application{}, err
	}
	const query = `UPDATE job_applications SET status = $2, updated_at = $3 WHERE id = $1 RETURNING ` + applicationColumns
	return scanApplication(s.pool.QueryRow(ctx, query, id, string(status), s.stamp()))
}

func (s *Store) DeleteApplication(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.execOne(ctx, `DELETE FROM job_applications WHERE id = $1`, id)
}

func (s *Store) CountApplications(ctx context.Context, r storage.TimeRange) (int64, error) {
	return s.count(ctx, "job_applications", "date_applied", r)
}

func scanApplication(row pgx.Row) (models.Application, error) {
	var (
		a      models.Application
		status string
	)
	if err := row.Scan(&a.ID, &a.JobID, &a.UserID, &a.ResumeID, &status, &a.DateApplied, &a.UpdatedAt); err != nil {
		return models.Application{}, mapErr(err)
	}
	a.Status = models.ApplicationStatus(status)
	a.DateApplied, a.UpdatedAt = a.DateApplied.UTC(), a.UpdatedAt.UTC()
	return a, nil
}
