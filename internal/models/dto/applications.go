package dto

import (
	"strings"

	"github.com/hongminglow/jobboard-be/internal/models"
)

type ApplyRequest struct {
	JobID string `json:"job_id"`
}

func (r *ApplyRequest) Validate() error {
	r.JobID = strings.TrimSpace(r.JobID)
	var c checker
	c.require("job_id", r.JobID)
	return c.result()
}

type UpdateStatusRequest struct {
	Status models.ApplicationStatus `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	r.Status = models.ApplicationStatus(strings.ToLower(strings.TrimSpace(string(r.Status))))
	if r.Status == "" {
		return &ValidationError{Message: "missing fields", Fields: []string{"status"}}
	}
	if !r.Status.Valid() {
		return Invalid("status must be one of pending, reviewed, interview, accepted, rejected")
	}
	return nil
}
