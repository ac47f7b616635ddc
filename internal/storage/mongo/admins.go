package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hongminglow/jobboard-be/internal/models"
)

func (s *Store) CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error) {
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = s.stamp()
	}
	doc := adminDoc{
		ID:           bson.NewObjectID(),
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
		CreatedAt:    admin.CreatedAt,
	}
	if _, err := s.admins.InsertOne(ctx, doc); err != nil {
		return models.Admin{}, mapErr(err)
	}
	return doc.model(), nil
}

func (s *Store) GetAdmin(ctx context.Context, id string) (models.Admin, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Admin{}, err
	}
	return findOne(ctx, s.admins, bson.D{{Key: "_id", Value: oid}}, adminDoc.model)
}

func (s *Store) FindAdminByUsernameOrEmail(ctx context.Context, identifier string) (models.Admin, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "username", Value: identifier}},
		bson.D{{Key: "email", Value: identifier}},
	}}}
	return findOne(ctx, s.admins, filter, adminDoc.model)
}
