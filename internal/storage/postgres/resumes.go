package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/jobboard-be/internal/models"
)

const resumeColumns = `id, user_id, sections, updated_at`

// UpsertResume relies on the unique user_id index so a user never has two resumes.
func (s *Store) UpsertResume(ctx context.Context, userID string, sections models.ResumeSections) (models.Resume, error) {
	if err := checkID(userID); err != nil {
		return models.Resume{}, err
	}
	sections.Normalize()
	const query = `
		INSERT INTO resumes (id, user_id, sections, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET sections = EXCLUDED.sections, updated_at = EXCLUDED.updated_at
		RETURNING ` + resumeColumns
	return scanResume(s.pool.QueryRow(ctx, query, newID(), userID, sections, s.stamp()))
}

func (s *Store) GetResume(ctx context.Context, id string) (models.Resume, error) {
	if err := checkID(id); err != nil {
		return models.Resume{}, err
	}
	return scanResume(s.pool.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id))
}

func (s *Store) GetResumeByUser(ctx context.Context, userID string) (models.Resume, error) {
	if err := checkID(userID); err != nil {
		return models.Resume{}, err
	}
	return scanResume(s.pool.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1`, userID))
}

func scanResume(row pgx.Row) (models.Resume, error) {
	var r models.Resume
	if err := row.Scan(&r.ID, &r.UserID, &r.ResumeSections, &r.UpdatedAt); err != nil {
		return models.Resume{}, mapErr(err)
	}
	r.Normalize()
	r.UpdatedAt = r.UpdatedAt.UTC()
	return r, nil
}
