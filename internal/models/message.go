package models

import "time"

// Message is a directed user-to-user text message. Messages are immutable
// once created; read state lives on the recipient's watermark, not here.
type Message struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SenderID    uint      `json:"sender_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Body        string    `json:"body" gorm:"size:140"`
	Timestamp   time.Time `json:"timestamp" gorm:"index"`
}

func (m *Message) ToDict() Dict {
	return Dict{
		"id":           m.ID,
		"sender_id":    m.SenderID,
		"recipient_id": m.RecipientID,
		"body":         m.Body,
		"timestamp":    m.Timestamp.UTC().Format(time.RFC3339),
	}
}

// CreateMessageRequest defines the request body for sending a message
type CreateMessageRequest struct {
	RecipientID uint   `json:"recipient_id" validate:"required"`
	Body        string `json:"body" validate:"required,min=1,max=140"`
}
