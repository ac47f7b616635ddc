package models

import "time"

// Company is a profile owned by the user who created it.
type Company struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	AboutUs           string    `json:"about_us"`
	NumberOfEmployees int       `json:"number_of_employees"`
	FoundedDate       string    `json:"founded_date"`
	UserID            string    `json:"user_id"`
	CreatedAt         time.Time `json:"created_at"`
	Counter           int       `json:"counter,omitempty"`
}

func (c *Company) SetCounter(n int) { c.Counter = n }

// CompanyPatch carries the mutable company fields.
type CompanyPatch struct {
	Title             *string
	AboutUs           *string
	NumberOfEmployees *int
	FoundedDate       *string
}

func (p CompanyPatch) Empty() bool {
	return p.Title == nil && p.AboutUs == nil && p.NumberOfEmployees == nil && p.FoundedDate == nil
}

func (p CompanyPatch) Apply(c *Company) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.AboutUs != nil {
		c.AboutUs = *p.AboutUs
	}
	if p.NumberOfEmployees != nil {
		c.NumberOfEmployees = *p.NumberOfEmployees
	}
	if p.FoundedDate != nil {
		c.FoundedDate = *p.FoundedDate
	}
}
