// Package mongo stores the job board in one MongoDB collection per record
// type (users, admins, jobs, companies, resumes, job_applications, messages).
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hongminglow/jobboard-be/internal/pagination"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time

	users        *mongo.Collection
	admins       *mongo.Collection
	jobs         *mongo.Collection
	companies    *mongo.Collection
	resumes      *mongo.Collection
	applications *mongo.Collection
	messages     *mongo.Collection
}

// New connects to uri, selects database and ensures the unique indexes that
// back the uniqueness guarantees of storage.Store.
func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	db := client.Database(database)
	s := &Store{
		client:       client,
		db:           db,
		now:          time.Now,
		users:        db.Collection("users"),
		admins:       db.Collection("admins"),
		jobs:         db.Collection("jobs"),
		companies:    db.Collection("companies"),
		resumes:      db.Collection("resumes"),
		applications: db.Collection("job_applications"),
		messages:     db.Collection("messages"),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := func(keys ...string) mongo.IndexModel {
		d := bson.D{}
		for _, k := range keys {
			d = append(d, bson.E{Key: k, Value: 1})
		}
		return mongo.IndexModel{Keys: d, Options: options.Index().SetUnique(true)}
	}
	plain := func(keys ...string) mongo.IndexModel {
		d := bson.D{}
		for _, k := range keys {
			d = append(d, bson.E{Key: k, Value: 1})
		}
		return mongo.IndexModel{Keys: d}
	}

	indexes := map[*mongo.Collection][]mongo.IndexModel{
		s.users:        {unique("username"), unique("email"), plain("createdAt")},
		s.admins:       {unique("username"), unique("email")},
		s.jobs:         {plain("posted_by", "date_posted")},
		s.companies:    {plain("user_id", "createdAt")},
		s.resumes:      {unique("user_id")},
		s.applications: {unique("job_id", "user_id"), plain("user_id", "date_applied")},
		s.messages:     {plain("application_id", "timestamp"), plain("receiver_id", "status", "timestamp")},
	}
	for coll, idx := range indexes {
		if _, err := coll.Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll.Name(), err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.client.Disconnect(ctx)
}

// Truncate removes every document but keeps the indexes. Used by integration tests.
func (s *Store) Truncate(ctx context.Context) error {
	for _, coll := range []*mongo.Collection{s.users, s.admins, s.jobs, s.companies, s.resumes, s.applications, s.messages} {
		if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
			return err
		}
	}
	return nil
}

// Drop removes the whole database.
func (s *Store) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}

func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func objectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, storage.ErrInvalidID
	}
	return oid, nil
}

// filterIDs adds an equality clause for every non-empty id.
func filterIDs(filter bson.D, pairs ...string) (bson.D, error) {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		oid, err := objectID(pairs[i+1])
		if err != nil {
			return nil, err
		}
		filter = append(filter, bson.E{Key: pairs[i], Value: oid})
	}
	return filter, nil
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return storage.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return storage.ErrAlreadyExists
	}
	return err
}

func findOne[D any, T any](ctx context.Context, coll *mongo.Collection, filter any, convert func(D) T) (T, error) {
	var doc D
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		var zero T
		return zero, mapErr(err)
	}
	return convert(doc), nil
}

// updateOne applies update and returns the document after the change.
func updateOne[D any, T any](ctx context.Context, coll *mongo.Collection, id bson.ObjectID, update bson.D, convert func(D) T) (T, error) {
	var doc D
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&doc); err != nil {
		var zero T
		return zero, mapErr(err)
	}
	return convert(doc), nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// listPage counts the matching documents and fetches the requested window in
// sort order. A zero limit is unbounded in MongoDB, which serves page 0.
func listPage[D any, T any, P pagination.Counted[T]](
	ctx context.Context,
	coll *mongo.Collection,
	filter bson.D,
	sort bson.D,
	page pagination.Request,
	convert func(D) T,
) (pagination.Result[T], error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return pagination.Result[T]{}, mapErr(err)
	}

	window := page.Window()
	opts := options.Find().SetSort(sort).SetSkip(int64(window.Offset)).SetLimit(int64(window.Limit))
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return pagination.Result[T]{}, mapErr(err)
	}
	var docs []D
	if err := cursor.All(ctx, &docs); err != nil {
		return pagination.Result[T]{}, mapErr(err)
	}
	items := make([]T, len(docs))
	for i, d := range docs {
		items[i] = convert(d)
	}
	return pagination.NewResult[T, P](total, page, items), nil
}

func (s *Store) count(ctx context.Context, coll *mongo.Collection, field string, r storage.TimeRange) (int64, error) {
	n, err := coll.CountDocuments(ctx, bson.D{{Key: field, Value: bson.D{
		{Key: "$gte", Value: r.From},
		{Key: "$lt", Value: r.To},
	}}})
	return n, mapErr(err)
}

// setString appends a $set entry when v is non-nil.
func setString(set bson.D, key string, v *string) bson.D {
	if v != nil {
		set = append(set, bson.E{Key: key, Value: *v})
	}
	return set
}
