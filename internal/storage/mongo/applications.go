package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/pagination"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

var applicationSort = bson.D{{Key: "date_applied", Value: 1}, {Key: "_id", Value: 1}}

func (s *Store) CreateApplication(ctx context.Context, app models.Application) (models.Application, error) {
	var (
		doc applicationDoc
		err error
	)
	if doc.JobID, err = objectID(app.JobID); err != nil {
		return models.Application{}, err
	}
	if doc.UserID, err = objectID(app.UserID); err != nil {
		return models.Application{}, err
	}
	if doc.ResumeID, err = objectID(app.ResumeID); err != nil {
		return models.Application{}, err
	}
	doc.ID = bson.NewObjectID()
	doc.Status = string(app.Status)
	if doc.Status == "" {
		doc.Status = string(models.StatusPending)
	}
	doc.DateApplied = app.DateApplied
	if doc.DateApplied.IsZero() {
		doc.DateApplied = s.stamp()
	}
	doc.UpdatedAt = doc.DateApplied
	if _, err := s.applications.InsertOne(ctx, doc); err != nil {
		return models.Application{}, mapErr(err)
	}
	return doc.model(), nil
}

func (s *Store) GetApplication(ctx context.Context, id string) (models.Application, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Application{}, err
	}
	return findOne(ctx, s.applications, bson.D{{Key: "_id", Value: oid}}, applicationDoc.model)
}

func (s *Store) ListApplications(ctx context.Context, filter storage.ApplicationFilter, page pagination.Request) (pagination.Result[models.Application], error) {
	f, err := filterIDs(bson.D{}, "job_id", filter.JobID, "user_id", filter.UserID)
	if err != nil {
		return pagination.Result[models.Application]{}, err
	}
	return listPage[applicationDoc, models.Application](ctx, s.applications, f, applicationSort, page, applicationDoc.model)
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (models.Application, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Application{}, err
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: string(status)},
		{Key: "updated_at", Value: s.stamp()},
	}}}
	return updateOne(ctx, s.applications, oid, update, applicationDoc.model)
}

func (s *Store) DeleteApplication(ctx context.Context, id string) error {
	return deleteOne(ctx, s.applications, id)
}

func (s *Store) CountApplications(ctx context.Context, r storage.TimeRange) (int64, error) {
	return s.count(ctx, s.applications, "date_applied", r)
}
