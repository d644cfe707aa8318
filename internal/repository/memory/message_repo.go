package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/muudhq/muud-backend/internal/domain"
)

type MessageRepo struct {
	mu       sync.RWMutex
	messages []domain.Message
	nextSeq  int64
}

func NewMessageRepo() *MessageRepo {
	return &MessageRepo{}
}

func (r *MessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextSeq++
	msg.Seq = r.nextSeq
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *MessageRepo) ListByConversation(_ context.Context, conversationID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var cursor *domain.Message
	if before != nil {
		for i := range r.messages {
			if r.messages[i].ID == *before {
				cursor = &r.messages[i]
				break
			}
		}
	}

	var result []domain.Message
	for _, msg := range r.messages {
		if msg.ConversationID != conversationID {
			continue
		}
		if cursor != nil && !orderedBefore(msg, *cursor) {
			continue
		}
		result = append(result, msg)
	}
	sort.Slice(result, func(i, j int) bool { return orderedBefore(result[i], result[j]) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func orderedBefore(a, b domain.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.Seq < b.Seq
}
