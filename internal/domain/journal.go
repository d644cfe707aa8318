package domain

import (
	"time"

	"github.com/google/uuid"
)

// Journal visibility levels, mirroring the mobile app's picker.
const (
	VisibilityPublic      = "Public"
	VisibilityInnerCircle = "Inner Circle"
	VisibilityConnections = "Connections"
)

type Journal struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	ImageURL   string    `json:"image_url"`
	Caption    string    `json:"caption"`
	Visibility string    `json:"visibility"`
	Emoji      string    `json:"emoji"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
