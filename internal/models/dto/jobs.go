package dto

import (
	"strings"

	"github.com/hongminglow/jobboard-be/internal/models"
)

type CreateJobRequest struct {
	Title        string `json:"title"`
	Sector       string `json:"sector"`
	Salary       string `json:"salary"`
	Location     string `json:"location"`
	JobType      string `json:"job_type"`
	Requirements string `json:"requirements"`
	Description  string `json:"description"`
	Benefits     string `json:"benefits"`
}

func (r *CreateJobRequest) Validate() error {
	fields := []struct {
		name string
		ptr  *string
	}{
		{"title", &r.Title},
		{"sector", &r.Sector},
		{"salary", &r.Salary},
		{"location", &r.Location},
		{"job_type", &r.JobType},
		{"requirements", &r.Requirements},
		{"description", &r.Description},
		{"benefits", &r.Benefits},
	}
	var c checker
	for _, f := range fields {
		*f.ptr = strings.TrimSpace(*f.ptr)
		c.require(f.name, *f.ptr)
	}
	return c.result()
}

// Job builds the record to insert; ownership fields are filled by the caller.
func (r CreateJobRequest) Job() models.Job {
	return models.Job{
		Title:        r.Title,
		Sector:       r.Sector,
		Salary:       r.Salary,
		Location:     r.Location,
		JobType:      r.JobType,
		Requirements: r.Requirements,
		Description:  r.Description,
		Benefits:     r.Benefits,
	}
}

type UpdateJobRequest struct {
	Title        *string `json:"title"`
	Sector       *string `json:"sector"`
	Salary       *string `json:"salary"`
	Location     *string `json:"location"`
	JobType      *string `json:"job_type"`
	Requirements *string `json:"requirements"`
	Description  *string `json:"description"`
	Benefits     *string `json:"benefits"`
}

func (r *UpdateJobRequest) Validate() error {
	var c checker
	fields := []struct {
		name string
		ptr  **string
	}{
		{"title", &r.Title},
		{"sector", &r.Sector},
		{"salary", &r.Salary},
		{"location", &r.Location},
		{"job_type", &r.JobType},
		{"requirements", &r.Requirements},
		{"description", &r.Description},
		{"benefits", &r.Benefits},
	}
	for _, f := range fields {
		*f.ptr = trimPtr(*f.ptr)
		c.optional(f.name, *f.ptr)
	}
	if err := c.result(); err != nil {
		return err
	}
	if r.Patch().Empty() {
		return Invalid("no fields to update")
	}
	return nil
}

func (r UpdateJobRequest) Patch() models.JobPatch {
	return models.JobPatch{
		Title:        r.Title,
		Sector:       r.Sector,
		Salary:       r.Salary,
		Location:     r.Location,
		JobType:      r.JobType,
		Requirements: r.Requirements,
		Description:  r.Description,
		Benefits:     r.Benefits,
	}
}
