package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/pagination"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

const companyColumns = `id, title, about_us, number_of_employees, founded_date, user_id, created_at`

func (s *Store) CreateCompany(ctx context.Context, company models.Company) (models.Company, error) {
	if err := checkID(company.UserID); err != nil {
		return models.Company{}, err
	}
	if company.CreatedAt.IsZero() {
		company.CreatedAt = s.stamp()
	}
	const query = `
		INSERT INTO companies (id, title, about_us, number_of_employees, founded_date, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + companyColumns
	row := s.pool.QueryRow(ctx, query, newID(), company.Title, company.AboutUs, company.NumberOfEmployees,
		company.FoundedDate, company.UserID, company.CreatedAt)
	return scanCompany(row)
}

func (s *Store) GetCompany(ctx context.Context, id string) (models.Company, error) {
	if err := checkID(id); err != nil {
		return models.Company{}, err
	}
	return scanCompany(s.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
}

func (s *Store) ListCompanies(ctx context.Context, filter storage.CompanyFilter, page pagination.Request) (pagination.Result[models.Company], error) {
	if filter.UserID != "" {
		if err := checkID(filter.UserID); err != nil {
			return pagination.Result[models.Company]{}, err
		}
	}
	var w where
	w.eq("user_id", filter.UserID)
	return listPage[models.Company](ctx, s, "companies", companyColumns, "created_at, id", &w, page, scanCompany)
}

func (s *Store) UpdateCompany(ctx context.Context, id string, patch models.CompanyPatch) (models.Company, error) {
	if err := checkID(id); err != nil {
		return models.Company{}, err
	}
	const query = `
		UPDATE companies SET
			title = COALESCE($2, title),
			about_us = COALESCE($3, about_us),
			number_of_employees = COALESCE($4, number_of_employees),
			founded_date = COALESCE($5, founded_date)
		WHERE id = $1
		RETURNING ` + companyColumns
	row := s.pool.QueryRow(ctx, query, id, patch.Title, patch.AboutUs, patch.NumberOfEmployees, patch.FoundedDate)
	return scanCompany(row)
}

func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.execOne(ctx, `DELETE FROM companies WHERE id = $1`, id)
}

func scanCompany(row pgx.Row) (models.Company, error) {
	var c models.Company
	if err := row.Scan(&c.ID, &c.Title, &c.AboutUs, &c.NumberOfEmployees, &c.FoundedDate, &c.UserID, &c.CreatedAt); err != nil {
		return models.Company{}, mapErr(err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}
