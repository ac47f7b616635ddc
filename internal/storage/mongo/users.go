package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.stamp()
	}
	doc := userDoc{
		ID:           bson.NewObjectID(),
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Username:     user.Username,
		Email:        user.Email,
		BirthDate:    user.BirthDate,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.UTC().Truncate(time.Millisecond),
	}
	doc.UpdatedAt = doc.CreatedAt
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		return models.User{}, mapErr(err)
	}
	return doc.model(), nil
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.User{}, err
	}
	return findOne(ctx, s.users, bson.D{{Key: "_id", Value: oid}}, userDoc.model)
}

func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return findOne(ctx, s.users, bson.D{{Key: "username", Value: username}}, userDoc.model)
}

func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return findOne(ctx, s.users, bson.D{{Key: "email", Value: email}}, userDoc.model)
}

func (s *Store) FindByUsernameOrEmail(ctx context.Context, identifier string) (models.User, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "username", Value: identifier}},
		bson.D{{Key: "email", Value: identifier}},
	}}}
	return findOne(ctx, s.users, filter, userDoc.model)
}

func (s *Store) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.User{}, err
	}
	set := bson.D{{Key: "updatedAt", Value: s.stamp()}}
	set = setString(set, "first_name", patch.FirstName)
	set = setString(set, "last_name", patch.LastName)
	set = setString(set, "username", patch.Username)
	set = setString(set, "email", patch.Email)
	set = setString(set, "birth_date", patch.BirthDate)
	return updateOne(ctx, s.users, oid, bson.D{{Key: "$set", Value: set}}, userDoc.model)
}

func (s *Store) SetPassword(ctx context.Context, id, passwordHash string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "password_hash", Value: passwordHash},
		{Key: "updatedAt", Value: s.stamp()},
	}}}
	_, err = updateOne(ctx, s.users, oid, update, userDoc.model)
	return err
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return deleteOne(ctx, s.users, id)
}

func (s *Store) CountUsers(ctx context.Context, r storage.TimeRange) (int64, error) {
	return s.count(ctx, s.users, "createdAt", r)
}
