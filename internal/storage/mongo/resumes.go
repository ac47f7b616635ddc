package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hongminglow/jobboard-be/internal/models"
)

// UpsertResume replaces the sections of the user's resume, creating it on
// first use. The unique user_id index keeps one resume per user.
func (s *Store) UpsertResume(ctx context.Context, userID string, sections models.ResumeSections) (models.Resume, error) {
	owner, err := objectID(userID)
	if err != nil {
		return models.Resume{}, err
	}
	sections.Normalize()
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "sections", Value: sections},
		{Key: "updated_at", Value: s.stamp()},
	}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc resumeDoc
	if err := s.resumes.FindOneAndUpdate(ctx, bson.D{{Key: "user_id", Value: owner}}, update, opts).Decode(&doc); err != nil {
		return models.Resume{}, mapErr(err)
	}
	return doc.model(), nil
}

func (s *Store) GetResume(ctx context.Context, id string) (models.Resume, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Resume{}, err
	}
	return findOne(ctx, s.resumes, bson.D{{Key: "_id", Value: oid}}, resumeDoc.model)
}

func (s *Store) GetResumeByUser(ctx context.Context, userID string) (models.Resume, error) {
	owner, err := objectID(userID)
	if err != nil {
		return models.Resume{}, err
	}
	return findOne(ctx, s.resumes, bson.D{{Key: "user_id", Value: owner}}, resumeDoc.model)
}
