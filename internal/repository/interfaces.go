package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/muudhq/muud-backend/internal/domain"
)

// Lookup methods return (nil, nil) when no row matches; errors are
// reserved for storage failures.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByProvider(ctx context.Context, provider, providerID string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// List returns users excluding the given id, newest first, plus the
	// total count of rows matching the filter.
	List(ctx context.Context, exclude uuid.UUID, offset, limit int) ([]domain.User, int, error)
}

type ConversationRepository interface {
	// Create inserts a conversation; ErrDuplicatePair signals that the
	// unique index on the canonical pair rejected the insert.
	Create(ctx context.Context, conv *domain.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	GetByPair(ctx context.Context, pair domain.ParticipantPair) (*domain.Conversation, error)
	// ListForParticipant orders by last message time descending, ties
	// broken by updated_at descending.
	ListForParticipant(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error)
	// UpdateLastMessage refreshes the denormalized preview fields.
	UpdateLastMessage(ctx context.Context, conversationID uuid.UUID, text string, senderID uuid.UUID, at time.Time) error
}

type MessageRepository interface {
	// Create inserts a message and fills in the storage-assigned Seq.
	Create(ctx context.Context, msg *domain.Message) error
	// ListByConversation returns messages in ascending (created_at, seq)
	// order, capped at limit. A non-nil before cursor restricts results to
	// messages ordered strictly before that message.
	ListByConversation(ctx context.Context, conversationID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error)
}

type JournalRepository interface {
	Create(ctx context.Context, journal *domain.Journal) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Journal, error)
}

type TrendsRepository interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*domain.TrendsDashboard, error)
	Upsert(ctx context.Context, dashboard *domain.TrendsDashboard) error
}
