package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muudhq/muud-backend/internal/domain"
	"github.com/muudhq/muud-backend/internal/repository"
)

const conversationColumns = `id, user_low, user_high, last_message_text,
	last_message_sender, last_message_at, created_at, updated_at`

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

func (r *ConversationRepo) Create(ctx context.Context, conv *domain.Conversation) error {
	query := `
		INSERT INTO conversations (id, user_low, user_high, last_message_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		conv.ID, conv.Participants.Low, conv.Participants.High,
		conv.LastMessageText, conv.CreatedAt, conv.UpdatedAt,
	)
	// The unique index on (user_low, user_high) is the arbiter of the
	// first-contact race: the loser re-fetches the winner's row.
	if isUniqueViolation(err) {
		return repository.ErrDuplicatePair
	}
	return err
}

func (r *ConversationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	return r.scanConversation(ctx,
		"SELECT "+conversationColumns+" FROM conversations WHERE id = $1", id)
}

func (r *ConversationRepo) GetByPair(ctx context.Context, pair domain.ParticipantPair) (*domain.Conversation, error) {
	return r.scanConversation(ctx,
		"SELECT "+conversationColumns+" FROM conversations WHERE user_low = $1 AND user_high = $2",
		pair.Low, pair.High)
}

func (r *ConversationRepo) ListForParticipant(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	query := "SELECT " + conversationColumns + ` FROM conversations
		WHERE user_low = $1 OR user_high = $1
		ORDER BY last_message_at DESC NULLS LAST, updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []domain.Conversation
	for rows.Next() {
		conv, err := scanConversationRow(rows)
		if err != nil {
			return nil, err
		}
		convs = append(convs, *conv)
	}
	return convs, rows.Err()
}

func (r *ConversationRepo) UpdateLastMessage(ctx context.Context, conversationID uuid.UUID, text string, senderID uuid.UUID, at time.Time) error {
	query := `
		UPDATE conversations
		SET last_message_text = $2, last_message_sender = $3, last_message_at = $4, updated_at = $4
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, conversationID, text, senderID, at)
	return err
}

func (r *ConversationRepo) scanConversation(ctx context.Context, query string, args ...any) (*domain.Conversation, error) {
	conv, err := scanConversationRow(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return conv, err
}

func scanConversationRow(row pgx.Row) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := row.Scan(
		&conv.ID, &conv.Participants.Low, &conv.Participants.High,
		&conv.LastMessageText, &conv.LastMessageSender, &conv.LastMessageAt,
		&conv.CreatedAt, &conv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}
