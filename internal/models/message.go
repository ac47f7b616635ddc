package models

import "time"

// MessageStatus is the read state of a message.
type MessageStatus string

const (
	MessageUnread MessageStatus = "unread"
	MessageRead   MessageStatus = "read"
)

// Message belongs to the thread of one application.
type Message struct {
	ID            string        `json:"id"`
	ApplicationID string        `json:"application_id"`
	SenderID      string        `json:"sender_id"`
	ReceiverID    string        `json:"receiver_id"`
	Message       string        `json:"message"`
	Status        MessageStatus `json:"status"`
	Timestamp     time.Time     `json:"timestamp"`
	Counter       int           `json:"counter,omitempty"`
}

func (m *Message) SetCounter(n int) { m.Counter = n }
