package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/pagination"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

const messageColumns = `id, application_id, sender_id, receiver_id, message, status, sent_at`

func (s *Store) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	if err := checkID(msg.ApplicationID, msg.SenderID, msg.ReceiverID); err != nil {
		return models.Message{}, err
	}
	if msg.Status == "" {
		msg.Status = models.MessageUnread
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.stamp()
	}
	const query = `
		INSERT INTO messages (id, application_id, sender_id, receiver_id, message, status, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + messageColumns
	row := s.pool.QueryRow(ctx, query, newID(), msg.ApplicationID, msg.SenderID, msg.ReceiverID,
		msg.Message, string(msg.Status), msg.Timestamp)
	return scanMessage(row)
}

func (s *Store) GetMessage(ctx context.Context, id string) (models.Message, error) {
	if err := checkID(id); err != nil {
		return models.Message{}, err
	}
	return scanMessage(s.pool.QueryRow(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id))
}

func (s *Store) ListMessages(ctx context.Context, filter storage.MessageFilter, page pagination.Request) (pagination.Result[models.Message], error) {
	for _, id := range []string{filter.ApplicationID, filter.ReceiverID} {
		if id == "" {
			continue
		}
		if err := checkID(id); err != nil {
			return pagination.Result[models.Message]{}, err
		}
	}
	var w where
	w.eq("application_id", filter.ApplicationID)
	w.eq("receiver_id", filter.ReceiverID)
	w.eq("status", string(filter.Status))
	return listPage[models.Message](ctx, s, "messages", messageColumns, "sent_at, id", &w, page, scanMessage)
}

func (s *Store) MarkMessageRead(ctx context.Context, id string) (models.Message, error) {
	if err := checkID(id); err != nil {
		return models.Message{}, err
	}
	const query = `UPDATE messages SET status = $2 WHERE id = $1 RETURNING ` + messageColumns
	return scanMessage(s.pool.QueryRow(ctx, query, id, string(models.MessageRead)))
}

func scanMessage(row pgx.Row) (models.Message, error) {
	var (
		m      models.Message
		status string
	)
	if err := row.Scan(&m.ID, &m.ApplicationID, &m.SenderID, &m.ReceiverID, &m.Message, &status, &m.Timestamp); err != nil {
		return models.Message{}, mapErr(err)
	}
	m.Status = models.MessageStatus(status)
	m.Timestamp = m.Timestamp.UTC()
	return m, nil
}
