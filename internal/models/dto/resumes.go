package dto

import (
	"strings"

	"github.com/hongminglow/jobboard-be/internal/models"
)

// ResumeRequest replaces every section of the caller's resume.
type ResumeRequest struct {
	models.ResumeSections
}

func (r *ResumeRequest) Validate() error {
	var c checker
	for _, e := range r.Education {
		if strings.TrimSpace(e.School) == "" || strings.TrimSpace(e.Degree) == "" {
			c.fail("education entries need school and degree")
			break
		}
	}
	for _, e := range r.Experience {
		if strings.TrimSpace(e.Title) == "" || strings.TrimSpace(e.Company) == "" {
			c.fail("experience entries need title and company")
			break
		}
	}
	for _, l := range r.LicensesAndCertificates {
		if strings.TrimSpace(l.Name) == "" {
			c.fail("licenses_and_certificates entries need a name")
			break
		}
	}
	for _, l := range r.Languages {
		if strings.TrimSpace(l.Name) == "" {
			c.fail("languages entries need a name")
			break
		}
	}
	for _, p := range r.Projects {
		if strings.TrimSpace(p.Name) == "" {
			c.fail("projects entries need a name")
			break
		}
	}
	for _, ref := range r.References {
		if strings.TrimSpace(ref.Name) == "" {
			c.fail("references entries need a name")
			break
		}
	}
	r.Normalize()
	return c.result()
}
