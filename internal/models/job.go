package models

import "time"

// Job is a posting. PostedBy holds the poster's user id and is the only
// ownership field consulted for updates and deletes.
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Sector       string    `json:"sector"`
	Salary       string    `json:"salary"`
	Location     string    `json:"location"`
	JobType      string    `json:"job_type"`
	Requirements string    `json:"requirements"`
	Description  string    `json:"description"`
	Benefits     string    `json:"benefits"`
	PostedBy     string    `json:"posted_by"`
	CompanyName  string    `json:"company_name"`
	DatePosted   time.Time `json:"date_posted"`
	Counter      int       `json:"counter,omitempty"`
}

func (j *Job) SetCounter(n int) { j.Counter = n }

// JobPatch carries the mutable job fields. Nil fields are left untouched.
type JobPatch struct {
	Title        *string
	Sector       *string
	Salary       *string
	Location     *string
	JobType      *string
	Requirements *string
	Description  *string
	Benefits     *string
}

func (p JobPatch) Empty() bool {
	return p.Title == nil && p.Sector == nil && p.Salary == nil && p.Location == nil &&
		p.JobType == nil && p.Requirements == nil && p.Description == nil && p.Benefits == nil
}

func (p JobPatch) Apply(j *Job) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&j.Title, p.Title)
	set(&j.Sector, p.Sector)
	set(&j.Salary, p.Salary)
	set(&j.Location, p.Location)
	set(&j.JobType, p.JobType)
	set(&j.Requirements, p.Requirements)
	set(&j.Description, p.Description)
	set(&j.Benefits, p.Benefits)
}
