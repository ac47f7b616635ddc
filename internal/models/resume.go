package models

import "time"

// Resume is the single CV a user maintains. Sections are replaced wholesale on update.
type Resume struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UpdatedAt time.Time `json:"updated_at"`
	ResumeSections
}

// ResumeSections is the editable body of a resume.
type ResumeSections struct {
	About                   string        `json:"about" bson:"about"`
	Education               []Education   `json:"education" bson:"education"`
	Experience              []Experience  `json:"experience" bson:"experience"`
	LicensesAndCertificates []Certificate `json:"licenses_and_certificates" bson:"licenses_and_certificates"`
	Skills                  []string      `json:"skills" bson:"skills"`
	Languages               []Language    `json:"languages" bson:"languages"`
	Projects                []Project     `json:"projects" bson:"projects"`
	Hobbies                 []string      `json:"hobbies" bson:"hobbies"`
	References              []Reference   `json:"references" bson:"references"`
}

// Normalize replaces nil sections with empty ones so they encode as [].
func (s *ResumeSections) Normalize() {
	if s.Education == nil {
		s.Education = []Education{}
	}
	if s.Experience == nil {
		s.Experience = []Experience{}
	}
	if s.LicensesAndCertificates == nil {
		s.LicensesAndCertificates = []Certificate{}
	}
	if s.Skills == nil {
		s.Skills = []string{}
	}
	if s.Languages == nil {
		s.Languages = []Language{}
	}
	if s.Projects == nil {
		s.Projects = []Project{}
	}
	if s.Hobbies == nil {
		s.Hobbies = []string{}
	}
	if s.References == nil {
		s.References = []Reference{}
	}
}

type Education struct {
	School       string `json:"school" bson:"school"`
	Degree       string `json:"degree" bson:"degree"`
	FieldOfStudy string `json:"field_of_study,omitempty" bson:"field_of_study,omitempty"`
	StartDate    string `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty" bson:"end_date,omitempty"`
}

type Experience struct {
	Title       string `json:"title" bson:"title"`
	Company     string `json:"company" bson:"company"`
	Location    string `json:"location,omitempty" bson:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

type Certificate struct {
	Name       string `json:"name" bson:"name"`
	Issuer     string `json:"issuer,omitempty" bson:"issuer,omitempty"`
	IssuedDate string `json:"issued_date,omitempty" bson:"issued_date,omitempty"`
}

type Language struct {
	Name  string `json:"name" bson:"name"`
	Level string `json:"level,omitempty" bson:"level,omitempty"`
}

type Project struct {
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	URL         string `json:"url,omitempty" bson:"url,omitempty"`
}

type Reference struct {
	Name     string `json:"name" bson:"name"`
	Contact  string `json:"contact,omitempty" bson:"contact,omitempty"`
	Relation string `json:"relation,omitempty" bson:"relation,omitempty"`
}
