package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/pagination"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

const jobColumns = `id, title, sector, salary, location, job_type, requirements, description, benefits, posted_by, company_name, date_posted`

func (s *Store) CreateJob(ctx context.Context, job models.Job) (models.Job, error) {
	if err := checkID(job.PostedBy); err != nil {
		return models.Job{}, err
	}
	if job.DatePosted.IsZero() {
		job.DatePosted = s.stamp()
	}
	const query = `
		INSERT INTO jobs (id, title, sector, salary, location, job_type, requirements, description, benefits, posted_by, company_name, date_posted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + jobColumns
	row := s.pool.QueryRow(ctx, query, newID(), job.Title, job.Sector, job.Salary, job.Location, job.JobType,
		job.Requirements, job.Description, job.Benefits, job.PostedBy, job.CompanyName, job.DatePosted)
	return scanJob(row)
}

func (s *Store) GetJob(ctx context.Context, id string) (models.Job, error) {
	if err := checkID(id); err != nil {
		return models.Job{}, err
	}
	return scanJob(s.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

func (s *Store) ListJobs(ctx context.Context, filter storage.JobFilter, page pagination.Request) (pagination.Result[models.Job], error) {
	if filter.PostedBy != "" {
		if err := checkID(filter.PostedBy); err != nil {
			return pagination.Result[models.Job]{}, err
		}
	}
	var w where
	w.eq("posted_by", filter.PostedBy)
	return listPage[models.Job](ctx, s, "jobs", jobColumns, "date_posted, id", &w, page, scanJob)
}

func (s *Store) UpdateJob(ctx context.Context, id string, patch models.JobPatch) (models.Job, error) {
	if err := checkID(id); err != nil {
		return models.Job{}, err
	}
	const query = `
		UPDATE jobs SET
			title = COALESCE($2, title),
			sector = COALESCE($3, sector),
			salary = COALESCE($4, salary),
			location = COALESCE($5, location),
			job_type = COALESCE($6, job_type),
			requirements = COALESCE($7, requirements),
			description = COALESCE($8, description),
			benefits = COALESCE($9, benefits)
		WHERE id = $1
		RETURNING ` + jobColumns
	row := s.pool.QueryRow(ctx, query, id, patch.Title, patch.Sector, patch.Salary, patch.Location,
		patch.JobType, patch.Requirements, patch.Description, patch.Benefits)
	return scanJob(row)
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.execOne(ctx, `DELETE FROM jobs WHERE id = $1`, id)
}

func (s *Store) CountJobs(ctx context.Context, r storage.TimeRange) (int64, error) {
	return s.count(ctx, "jobs", "date_posted", r)
}

func scanJob(row pgx.Row) (models.Job, error) {
	var j models.Job
	if err := row.Scan(&j.ID, &j.Title, &j.Sector, &j.Salary, &j.Location, &j.JobType, &j.Requirements,
		&j.Description, &j.Benefits, &j.PostedBy, &j.CompanyName, &j.DatePosted); err != nil {
		return models.Job{}, mapErr(err)
	}
	j.DatePosted = j.DatePosted.UTC()
	return j, nil
}
