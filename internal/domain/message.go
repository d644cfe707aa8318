package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable once created. Seq is assigned by storage at insert
// and breaks ordering ties between messages sharing a creation timestamp.
type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	Text           string    `json:"text"`
	ImageURL       string    `json:"image_url,omitempty"`
	Seq            int64     `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
