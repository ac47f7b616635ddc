package models

import "time"

// ApplicationStatus tracks where an application is in the hiring flow.
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusReviewed  ApplicationStatus = "reviewed"
	StatusInterview ApplicationStatus = "interview"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusInterview, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Application links an applicant and their resume to a job.
type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"job_id"`
	UserID      string            `json:"user_id"`
	ResumeID    string            `json:"resume_id"`
	Status      ApplicationStatus `json:"status"`
	DateApplied time.Time         `json:"date_applied"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Counter     int               `json:"counter,omitempty"`
}

func (a *Application) SetCounter(n int) { a.Counter = n }

// Applicant is the job poster's view of one application.
type Applicant struct {
	ApplicationID string            `json:"application_id"`
	UserID        string            `json:"user_id"`
	UserName      string            `json:"user_name"`
	ResumeID      string            `json:"resume_id"`
	Resume        *Resume           `json:"resume,omitempty"`
	Status        ApplicationStatus `json:"status"`
	DateApplied   time.Time         `json:"date_applied"`
	Counter       int               `json:"counter"`
}

func (a *Applicant) SetCounter(n int) { a.Counter = n }

// AppliedJob is the applicant's view of one application.
type AppliedJob struct {
	ApplicationID string            `json:"application_id"`
	JobID         string            `json:"job_id"`
	JobTitle      string            `json:"job_title"`
	CompanyName   string            `json:"company_name"`
	Location      string            `json:"location"`
	Status        ApplicationStatus `json:"status"`
	DateApplied   time.Time         `json:"date_applied"`
	Counter       int               `json:"counter"`
}

func (a *AppliedJob) SetCounter(n int) { a.Counter = n }
