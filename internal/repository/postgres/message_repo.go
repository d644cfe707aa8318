package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muudhq/muud-backend/internal/domain"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, sender_id, text, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seq`
	return r.pool.QueryRow(ctx, query,
		msg.ID, msg.ConversationID, msg.SenderID, msg.Text, msg.ImageURL, msg.CreatedAt,
	).Scan(&msg.Seq)
}

func (r *MessageRepo) ListByConversation(ctx context.Context, conversationID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error) {
	var query string
	args := []any{conversationID, limit}

	if before != nil {
		// Strictly before the cursor message in (created_at, seq) order.
		query = `
			SELECT m.id, m.conversation_id, m.sender_id, m.text, m.image_url, m.seq, m.created_at
			FROM messages m, messages c
			WHERE c.id = $3 AND m.conversation_id = $1
				AND (m.created_at, m.seq) < (c.created_at, c.seq)
			ORDER BY m.created_at, m.seq
			LIMIT $2`
		args = append(args, *before)
	} else {
		query = `
			SELECT id, conversation_id, sender_id, text, image_url, seq, created_at
			FROM messages
			WHERE conversation_id = $1
			ORDER BY created_at, seq
			LIMIT $2`
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID, &msg.ConversationID, &msg.SenderID,
			&msg.Text, &msg.ImageURL, &msg.Seq, &msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
