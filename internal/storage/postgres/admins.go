package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/jobboard-be/internal/models"
)

const adminColumns = `id, username, email, password_hash, created_at`

func (s *Store) CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error) {
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = s.stamp()
	}
	const query = `
		INSERT INTO admins (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + adminColumns
	return scanAdmin(s.pool.QueryRow(ctx, query, newID(), admin.Username, admin.Email, admin.PasswordHash, admin.CreatedAt))
}

func (s *Store) GetAdmin(ctx context.Context, id string) (models.Admin, error) {
	if err := checkID(id); err != nil {
		return models.Admin{}, err
	}
	return scanAdmin(s.pool.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id))
}

func (s *Store) FindAdminByUsernameOrEmail(ctx context.Context, identifier string) (models.Admin, error) {
	const query = `SELECT ` + adminColumns + ` FROM admins WHERE username = $1 OR email = $1 ORDER BY created_at LIMIT 1`
	return scanAdmin(s.pool.QueryRow(ctx, query, identifier))
}

func scanAdmin(row pgx.Row) (models.Admin, error) {
	var a models.Admin
	if err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		return models.Admin{}, mapErr(err)
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}
