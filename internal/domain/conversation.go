package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidPair is returned when a participant pair cannot be derived:
// a nil identifier, or both identifiers naming the same user.
var ErrInvalidPair = errors.New("invalid participant pair")

// ParticipantPair is the canonical, order-independent key of a 1:1
// conversation. Low sorts lexicographically before High, so the same two
// users always resolve to the same pair regardless of call direction.
type ParticipantPair struct {
	Low  uuid.UUID
	High uuid.UUID
}

// NewParticipantPair derives the canonical pair for two users. A user
// cannot converse with themself: the sorted key would collapse {A, A}
// into a degenerate single-participant conversation.
func NewParticipantPair(a, b uuid.UUID) (ParticipantPair, error) {
	if a == uuid.Nil || b == uuid.Nil || a == b {
		return ParticipantPair{}, ErrInvalidPair
	}
	if a.String() > b.String() {
		a, b = b, a
	}
	return ParticipantPair{Low: a, High: b}, nil
}

// MarshalJSON renders the pair as a two-element array, matching the wire
// shape clients expect for conversation participants.
func (p ParticipantPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]uuid.UUID{p.Low, p.High})
}

func (p *ParticipantPair) UnmarshalJSON(data []byte) error {
	var ids [2]uuid.UUID
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	pair, err := NewParticipantPair(ids[0], ids[1])
	if err != nil {
		return err
	}
	*p = pair
	return nil
}

// Contains reports whether id is one of the two participants.
func (p ParticipantPair) Contains(id uuid.UUID) bool {
	return id == p.Low || id == p.High
}

// Other returns the participant that is not id. Callers must check
// Contains first; Other on a non-member returns the low participant.
func (p ParticipantPair) Other(id uuid.UUID) uuid.UUID {
	if id == p.Low {
		return p.High
	}
	return p.Low
}

// Conversation is a 1:1 chat between two fixed participants. Membership
// never changes after creation and conversations are never deleted. The
// last-message fields are a denormalized display cache; the message table
// is the source of truth.
type Conversation struct {
	ID                uuid.UUID       `json:"id"`
	Participants      ParticipantPair `json:"participants"`
	LastMessageText   string          `json:"last_message_text"`
	LastMessageSender *uuid.UUID `json:"last_message_sender,omitempty"`
	LastMessageAt     *time.Time `json:"last_message_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ConversationSummary is a conversation projected for the caller's
// conversation list: the other participant resolved to display fields.
type ConversationSummary struct {
	ID                uuid.UUID  `json:"id"`
	OtherUserID       uuid.UUID  `json:"other_user_id"`
	OtherFullName     string     `json:"other_full_name"`
	OtherUsername     string     `json:"other_username"`
	OtherAvatarURL    string     `json:"other_avatar_url"`
	OtherMood         string     `json:"other_mood"`
	LastMessageText   string     `json:"last_message_text"`
	LastMessageSender *uuid.UUID `json:"last_message_sender,omitempty"`
	LastMessageAt     *time.Time `json:"last_message_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}
