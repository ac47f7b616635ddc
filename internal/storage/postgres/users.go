package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

const userColumns = `id, first_name, last_name, username, email, birth_date, password_hash, created_at, updated_at`

// CreateUser inserts a new user row. Duplicate username or email yields ErrAlreadyExists.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.stamp()
	}
	const query = `
		INSERT INTO users (id, first_name, last_name, username, email, birth_date, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING ` + userColumns
	row := s.pool.QueryRow(ctx, query, newID(), user.FirstName, user.LastName, user.Username,
		user.Email, user.BirthDate, user.PasswordHash, user.CreatedAt)
	return scanUser(row)
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	if err := checkID(id); err != nil {
		return models.User{}, err
	}
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// FindByUsernameOrEmail fetches the first user matching the identifier as username or email.
func (s *Store) FindByUsernameOrEmail(ctx context.Context, identifier string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $1 ORDER BY created_at LIMIT 1`
	return scanUser(s.pool.QueryRow(ctx, query, identifier))
}

// UpdateUser applies the non-nil fields of patch in a single statement.
func (s *Store) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	if err := checkID(id); err != nil {
		return models.User{}, err
	}
	const query = `
		UPDATE users SET
			first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			username = COALESCE($4, username),
			email = COALESCE($5, email),
			birth_date = COALESCE($6, birth_date),
			updated_at = $7
		WHERE id = $1
		RETURNING ` + userColumns
	row := s.pool.QueryRow(ctx, query, id, patch.FirstName, patch.LastName, patch.Username,
		patch.Email, patch.BirthDate, s.stamp())
	return scanUser(row)
}

func (s *Store) SetPassword(ctx context.Context, id, passwordHash string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.execOne(ctx, `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`, id, passwordHash, s.stamp())
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.execOne(ctx, `DELETE FROM users WHERE id = $1`, id)
}

func (s *Store) CountUsers(ctx context.Context, r storage.TimeRange) (int64, error) {
	return s.count(ctx, "users", "created_at", r)
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Username, &user.Email,
		&user.BirthDate, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return models.User{}, mapErr(err)
	}
	user.CreatedAt, user.UpdatedAt = user.CreatedAt.UTC(), user.UpdatedAt.UTC()
	return user, nil
}
