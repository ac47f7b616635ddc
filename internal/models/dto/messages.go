package dto

import "strings"

// SendMessageRequest posts into an application thread. ReceiverID is optional;
// when empty the other participant of the application receives the message.
type SendMessageRequest struct {
	Message    string `json:"message"`
	ReceiverID string `json:"receiver_id"`
}

func (r *SendMessageRequest) Validate() error {
	r.Message = strings.TrimSpace(r.Message)
	r.ReceiverID = strings.TrimSpace(r.ReceiverID)
	if r.Message == "" {
		return Invalid("message content is missing")
	}
	return nil
}
