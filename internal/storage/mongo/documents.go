package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hongminglow/jobboard-be/internal/models"
)

// Documents mirror the models with ObjectID keys and references.

type userDoc struct {
	ID           bson.ObjectID `bson:"_id"`
	FirstName    string        `bson:"first_name"`
	LastName     string        `bson:"last_name"`
	Username     string        `bson:"username"`
	Email        string        `bson:"email"`
	BirthDate    string        `bson:"birth_date"`
	PasswordHash string        `bson:"password_hash"`
	CreatedAt    time.Time     `bson:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt"`
}

func (d userDoc) model() models.User {
	return models.User{
		ID:           d.ID.Hex(),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Username:     d.Username,
		Email:        d.Email,
		BirthDate:    d.BirthDate,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

type adminDoc struct {
	ID           bson.ObjectID `bson:"_id"`
	Username     string        `bson:"username"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	CreatedAt    time.Time     `bson:"createdAt"`
}

func (d adminDoc) model() models.Admin {
	return models.Admin{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

type jobDoc struct {
	ID           bson.ObjectID `bson:"_id"`
	Title        string        `bson:"title"`
	Sector       string        `bson:"sector"`
	Salary       string        `bson:"salary"`
	Location     string        `bson:"location"`
	JobType      string        `bson:"job_type"`
	Requirements string        `bson:"requirements"`
	Description  string        `bson:"description"`
	Benefits     string        `bson:"benefits"`
	PostedBy     bson.ObjectID `bson:"posted_by"`
	CompanyName  string        `bson:"company_name"`
	DatePosted   time.Time     `bson:"date_posted"`
}

func (d jobDoc) model() models.Job {
	return models.Job{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Sector:       d.Sector,
		Salary:       d.Salary,
		Location:     d.Location,
		JobType:      d.JobType,
		Requirements: d.Requirements,
		Description:  d.Description,
		Benefits:     d.Benefits,
		PostedBy:     d.PostedBy.Hex(),
		CompanyName:  d.CompanyName,
		DatePosted:   d.DatePosted.UTC(),
	}
}

type companyDoc struct {
	ID                bson.ObjectID `bson:"_id"`
	Title             string        `bson:"title"`
	AboutUs           string        `bson:"about_us"`
	NumberOfEmployees int           `bson:"number_of_employees"`
	FoundedDate       string        `bson:"founded_date"`
	UserID            bson.ObjectID `bson:"user_id"`
	CreatedAt         time.Time     `bson:"createdAt"`
}

func (d companyDoc) model() models.Company {
	return models.Company{
		ID:                d.ID.Hex(),
		Title:             d.Title,
		AboutUs:           d.AboutUs,
		NumberOfEmployees: d.NumberOfEmployees,
		FoundedDate:       d.FoundedDate,
		UserID:            d.UserID.Hex(),
		CreatedAt:         d.CreatedAt.UTC(),
	}
}

type resumeDoc struct {
	ID        bson.ObjectID         `bson:"_id"`
	UserID    bson.ObjectID         `bson:"user_id"`
	Sections  models.ResumeSections `bson:"sections"`
	UpdatedAt time.Time             `bson:"updated_at"`
}

func (d resumeDoc) model() models.Resume {
	r := models.Resume{
		ID:             d.ID.Hex(),
		UserID:         d.UserID.Hex(),
		UpdatedAt:      d.UpdatedAt.UTC(),
		ResumeSections: d.Sections,
	}
	r.Normalize()
	return r
}

type applicationDoc struct {
	ID          bson.ObjectID `bson:"_id"`
	JobID       bson.ObjectID `bson:"job_id"`
	UserID      bson.ObjectID `bson:"user_id"`
	ResumeID    bson.ObjectID `bson:"resume_id"`
	Status      string        `bson:"status"`
	DateApplied time.Time     `bson:"date_applied"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}

func (d applicationDoc) model() models.Application {
	return models.Application{
		ID:          d.ID.Hex(),
		JobID:       d.JobID.Hex(),
		UserID:      d.UserID.Hex(),
		ResumeID:    d.ResumeID.Hex(),
		Status:      models.ApplicationStatus(d.Status),
		DateApplied: d.DateApplied.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type messageDoc struct {
	ID            bson.ObjectID `bson:"_id"`
	ApplicationID bson.ObjectID `bson:"application_id"`
	SenderID      bson.ObjectID `bson:"sender_id"`
	ReceiverID    bson.ObjectID `bson:"receiver_id"`
	Message       string        `bson:"message"`
	Status        string        `bson:"status"`
	Timestamp     time.Time     `bson:"timestamp"`
}

func (d messageDoc) model() models.Message {
	return models.Message{
		ID:            d.ID.Hex(),
		ApplicationID: d.ApplicationID.Hex(),
		SenderID:      d.SenderID.Hex(),
		ReceiverID:    d.ReceiverID.Hex(),
		Message:       d.Message,
		Status:        models.MessageStatus(d.Status),
		Timestamp:     d.Timestamp.UTC(),
	}
}
