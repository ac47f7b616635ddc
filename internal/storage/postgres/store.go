package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hongminglow/jobboard-be/internal/pagination"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence for every job-board collection.
type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// New connects to databaseURL and bootstraps the schema.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Truncate empties every table. Used by integration tests.
func (s *Store) Truncate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `TRUNCATE users, admins, jobs, companies, resumes, job_applications, messages`)
	return err
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			username TEXT NOT NULL,
			email TEXT NOT NULL,
			birth_date TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_username_unique_idx ON users (username);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_unique_idx ON users (email);`,
		`CREATE INDEX IF NOT EXISTS users_created_at_idx ON users (created_at);`,
		`CREATE TABLE IF NOT EXISTS admins (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS admins_username_unique_idx ON admins (username);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS admins_email_unique_idx ON admins (email);`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			sector TEXT NOT NULL,
			salary TEXT NOT NULL,
			location TEXT NOT NULL,
			job_type TEXT NOT NULL,
			requirements TEXT NOT NULL,
			description TEXT NOT NULL,
			benefits TEXT NOT NULL,
			posted_by UUID NOT NULL,
			company_name TEXT NOT NULL DEFAULT '',
			date_posted TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS jobs_posted_by_idx ON jobs (posted_by, date_posted);`,
		`CREATE TABLE IF NOT EXISTS companies (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			about_us TEXT NOT NULL,
			number_of_employees INTEGER NOT NULL DEFAULT 0,
			founded_date TEXT NOT NULL,
			user_id UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS companies_user_id_idx ON companies (user_id, created_at);`,
		`CREATE TABLE IF NOT EXISTS resumes (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			sections JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS resumes_user_id_unique_idx ON resumes (user_id);`,
		`CREATE TABLE IF NOT EXISTS job_applications (
			id UUID PRIMARY KEY,
			job_id UUID NOT NULL,
			user_id UUID NOT NULL,
			resume_id UUID NOT NULL,
			status TEXT NOT NULL,
			date_applied TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS job_applications_job_user_unique_idx ON job_applications (job_id, user_id);`,
		`CREATE INDEX IF NOT EXISTS job_applications_user_id_idx ON job_applications (user_id, date_applied);`,
		`CREATE TABLE IF NOT EXISTS messages (
			id UUID PRIMARY KEY,
			application_id UUID NOT NULL,
			sender_id UUID NOT NULL,
			receiver_id UUID NOT NULL,
			message TEXT NOT NULL,
			status TEXT NOT NULL,
			sent_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS messages_application_id_idx ON messages (application_id, sent_at);`,
		`CREATE INDEX IF NOT EXISTS messages_receiver_id_idx ON messages (receiver_id, status, sent_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func checkID(ids ...string) error {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return storage.ErrInvalidID
		}
	}
	return nil
}

// mapErr translates driver errors into storage sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return storage.ErrAlreadyExists
		case "22P02":
			return storage.ErrInvalidID
		}
	}
	return err
}

// execOne runs a statement that must touch exactly one row.
func (s *Store) execOne(ctx context.Context, query string, args ...any) error {
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// where accumulates AND-ed conditions with positional arguments.
type where struct {
	clauses []string
	args    []any
}

// eq adds "column = $n" when value is non-empty.
func (w *where) eq(column, value string) {
	if value == "" {
		return
	}
	w.args = append(w.args, value)
	w.clauses = append(w.clauses, fmt.Sprintf("%s = $%d", column, len(w.args)))
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// listPage counts the rows matching w, then fetches the requested window.
// LIMIT NULL is unbounded in Postgres, which serves page 0.
func listPage[T any, P pagination.Counted[T]](
	ctx context.Context,
	s *Store,
	table, columns, orderBy string,
	w *where,
	page pagination.Request,
	scan func(pgx.Row) (T, error),
) (pagination.Result[T], error) {
	var total int64
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table+w.String(), w.args...).Scan(&total); err != nil {
		return pagination.Result[T]{}, mapErr(err)
	}

	window := page.Window()
	var limit any
	if window.Limit > 0 {
		limit = window.Limit
	}
	args := append(append([]any{}, w.args...), limit, window.Offset)
	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		columns, table, w.String(), orderBy, len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return pagination.Result[T]{}, mapErr(err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return scan(row)
	})
	if err != nil {
		return pagination.Result[T]{}, mapErr(err)
	}
	return pagination.NewResult[T, P](total, page, items), nil
}

func (s *Store) count(ctx context.Context, table, column string, r storage.TimeRange) (int64, error) {
	var n int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s >= $1 AND %s < $2", table, column, column)
	if err := s.pool.QueryRow(ctx, query, r.From, r.To).Scan(&n); err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}
