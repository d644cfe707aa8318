package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/muudhq/muud-backend/internal/domain"
	"github.com/muudhq/muud-backend/internal/repository"
)

type ConversationRepo struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]domain.Conversation
	byPair map[domain.ParticipantPair]uuid.UUID
}

func NewConversationRepo() *ConversationRepo {
	return &ConversationRepo{
		byID:   make(map[uuid.UUID]domain.Conversation),
		byPair: make(map[domain.ParticipantPair]uuid.UUID),
	}
}

func (r *ConversationRepo) Create(_ context.Context, conv *domain.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byPair[conv.Participants]; exists {
		return repository.ErrDuplicatePair
	}
	r.byPair[conv.Participants] = conv.ID
	r.byID[conv.ID] = *conv
	return nil
}

func (r *ConversationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if conv, ok := r.byID[id]; ok {
		return &conv, nil
	}
	return nil, nil
}

func (r *ConversationRepo) GetByPair(_ context.Context, pair domain.ParticipantPair) (*domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.byPair[pair]; ok {
		conv := r.byID[id]
		return &conv, nil
	}
	return nil, nil
}

func (r *ConversationRepo) ListForParticipant(_ context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var convs []domain.Conversation
	for _, conv := range r.byID {
		if conv.Participants.Contains(userID) {
			convs = append(convs, conv)
		}
	}
	sort.Slice(convs, func(i, j int) bool {
		ai, aj := convs[i].LastMessageAt, convs[j].LastMessageAt
		switch {
		case ai != nil && aj != nil && !ai.Equal(*aj):
			return ai.After(*aj)
		case ai != nil && aj == nil:
			return true
		case ai == nil && aj != nil:
			return false
		}
		return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
	})
	return convs, nil
}

func (r *ConversationRepo) UpdateLastMessage(_ context.Context, conversationID uuid.UUID, text string, senderID uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.byID[conversationID]
	if !ok {
		return nil
	}
	conv.LastMessageText = text
	conv.LastMessageSender = &senderID
	conv.LastMessageAt = &at
	conv.UpdatedAt = at
	r.byID[conversationID] = conv
	return nil
}

// Count reports how many conversations exist; used by the first-contact
// race tests.
func (r *ConversationRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
