package dto

import (
	"strings"

	"github.com/hongminglow/jobboard-be/internal/models"
)

type CreateCompanyRequest struct {
	Title             string `json:"title"`
	AboutUs           string `json:"about_us"`
	NumberOfEmployees int    `json:"number_of_employees"`
	FoundedDate       string `json:"founded_date"`
}

func (r *CreateCompanyRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.AboutUs = strings.TrimSpace(r.AboutUs)
	r.FoundedDate = strings.TrimSpace(r.FoundedDate)

	var c checker
	c.require("title", r.Title)
	c.require("about_us", r.AboutUs)
	c.require("founded_date", r.FoundedDate)
	if r.NumberOfEmployees < 0 {
		c.fail("number_of_employees cannot be negative")
	}
	return c.result()
}

func (r CreateCompanyRequest) Company() models.Company {
	return models.Company{
		Title:             r.Title,
		AboutUs:           r.AboutUs,
		NumberOfEmployees: r.NumberOfEmployees,
		FoundedDate:       r.FoundedDate,
	}
}

type UpdateCompanyRequest struct {
	Title             *string `json:"title"`
	AboutUs           *string `json:"about_us"`
	NumberOfEmployees *int    `json:"number_of_employees"`
	FoundedDate       *string `json:"founded_date"`
}

func (r *UpdateCompanyRequest) Validate() error {
	r.Title, r.AboutUs, r.FoundedDate = trimPtr(r.Title), trimPtr(r.AboutUs), trimPtr(r.FoundedDate)

	var c checker
	c.optional("title", r.Title)
	if r.NumberOfEmployees != nil && *r.NumberOfEmployees < 0 {
		c.fail("number_of_employees cannot be negative")
	}
	if err := c.result(); err != nil {
		return err
	}
	if r.Patch().Empty() {
		return Invalid("no fields to update")
	}
	return nil
}

func (r UpdateCompanyRequest) Patch() models.CompanyPatch {
	return models.CompanyPatch{
		Title:             r.Title,
		AboutUs:           r.AboutUs,
		NumberOfEmployees: r.NumberOfEmployees,
		FoundedDate:       r.FoundedDate,
	}
}
