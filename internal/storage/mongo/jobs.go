package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/pagination"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

var jobSort = bson.D{{Key: "date_posted", Value: 1}, {Key: "_id", Value: 1}}

func (s *Store) CreateJob(ctx context.Context, job models.Job) (models.Job, error) {
	poster, err := objectID(job.PostedBy)
	if err != nil {
		return models.Job{}, err
	}
	if job.DatePosted.IsZero() {
		job.DatePosted = s.stamp()
	}
	doc := jobDoc{
		ID:           bson.NewObjectID(),
		Title:        job.Title,
		Sector:       job.Sector,
		Salary:       job.Salary,
		Location:     job.Location,
		JobType:      job.JobType,
		Requirements: job.Requirements,
		Description:  job.Description,
		Benefits:     job.Benefits,
		PostedBy:     poster,
		CompanyName:  job.CompanyName,
		DatePosted:   job.DatePosted,
	}
	if _, err := s.jobs.InsertOne(ctx, doc); err != nil {
		return models.Job{}, mapErr(err)
	}
	return doc.model(), nil
}

func (s *Store) GetJob(ctx context.Context, id string) (models.Job, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Job{}, err
	}
	return findOne(ctx, s.jobs, bson.D{{Key: "_id", Value: oid}}, jobDoc.model)
}

func (s *Store) ListJobs(ctx context.Context, filter storage.JobFilter, page pagination.Request) (pagination.Result[models.Job], error) {
	f, err := filterIDs(bson.D{}, "posted_by", filter.PostedBy)
	if err != nil {
		return pagination.Result[models.Job]{}, err
	}
	return listPage[jobDoc, models.Job](ctx, s.jobs, f, jobSort, page, jobDoc.model)
}

func (s *Store) UpdateJob(ctx context.Context, id string, patch models.JobPatch) (models.Job, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Job{}, err
	}
	set := bson.D{}
	set = setString(set, "title", patch.Title)
	set = setString(set, "sector", patch.Sector)
	set = setString(set, "salary", patch.Salary)
	set = setString(set, "location", patch.Location)
	set = setString(set, "job_type", patch.JobType)
	set = setString(set, "requirements", patch.Requirements)
	set = setString(set, "description", patch.Description)
	set = setString(set, "benefits", patch.Benefits)
	if len(set) == 0 {
		return s.GetJob(ctx, id)
	}
	return updateOne(ctx, s.jobs, oid, bson.D{{Key: "$set", Value: set}}, jobDoc.model)
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	return deleteOne(ctx, s.jobs, id)
}

func (s *Store) CountJobs(ctx context.Context, r storage.TimeRange) (int64, error) {
	return s.count(ctx, s.jobs, "date_posted", r)
}
