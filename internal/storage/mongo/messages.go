package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/pagination"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

var messageSort = bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}}

func (s *Store) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	var (
		doc messageDoc
		err error
	)
	if doc.ApplicationID, err = objectID(msg.ApplicationID); err != nil {
		return models.Message{}, err
	}
	if doc.SenderID, err = objectID(msg.SenderID); err != nil {
		return models.Message{}, err
	}
	if doc.ReceiverID, err = objectID(msg.ReceiverID); err != nil {
		return models.Message{}, err
	}
	doc.ID = bson.NewObjectID()
	doc.Message = msg.Message
	doc.Status = string(msg.Status)
	if doc.Status == "" {
		doc.Status = string(models.MessageUnread)
	}
	doc.Timestamp = msg.Timestamp
	if doc.Timestamp.IsZero() {
		doc.Timestamp = s.stamp()
	}
	if _, err := s.messages.InsertOne(ctx, doc); err != nil {
		return models.Message{}, mapErr(err)
	}
	return doc.model(), nil
}

func (s *Store) GetMessage(ctx context.Context, id string) (models.Message, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Message{}, err
	}
	return findOne(ctx, s.messages, bson.D{{Key: "_id", Value: oid}}, messageDoc.model)
}

func (s *Store) ListMessages(ctx context.Context, filter storage.MessageFilter, page pagination.Request) (pagination.Result[models.Message], error) {
	f, err := filterIDs(bson.D{}, "application_id", filter.ApplicationID, "receiver_id", filter.ReceiverID)
	if err != nil {
		return pagination.Result[models.Message]{}, err
	}
	if filter.Status != "" {
		f = append(f, bson.E{Key: "status", Value: string(filter.Status)})
	}
	return listPage[messageDoc, models.Message](ctx, s.messages, f, messageSort, page, messageDoc.model)
}

func (s *Store) MarkMessageRead(ctx context.Context, id string) (models.Message, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Message{}, err
	}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: string(models.MessageRead)}}}}
	return updateOne(ctx, s.messages, oid, update, messageDoc.model)
}
