package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muudhq/muud-backend/internal/domain"
	"github.com/muudhq/muud-backend/internal/repository"
)

// MaxMessagePageSize caps a single message listing. Requests asking for
// more (or nothing) get exactly this many; older history is reached
// through the before cursor.
const MaxMessagePageSize = 200

// ChatService owns the conversation invariants: one conversation per
// unordered participant pair, sender must be a participant, messages
// totally ordered within a conversation. The repositories are pure
// persistence; all authorization happens here.
type ChatService struct {
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	users         repository.UserRepository
	logger        *zap.SugaredLogger
}

func NewChatService(
	conversations repository.ConversationRepository,
	messages repository.MessageRepository,
	users repository.UserRepository,
	logger *zap.SugaredLogger,
) *ChatService {
	return &ChatService{
		conversations: conversations,
		messages:      messages,
		users:         users,
		logger:        logger,
	}
}

// CreateOrGetConversation returns the single conversation between the
// actor and the other user, creating it on first contact. Two concurrent
// first-contact requests (in either direction) converge on one row: the
// storage layer's unique index on the canonical pair rejects the losing
// insert, which is recovered by re-fetching the winner.
func (s *ChatService) CreateOrGetConversation(ctx context.Context, actorID, otherID uuid.UUID) (*domain.Conversation, error) {
	pair, err := domain.NewParticipantPair(actorID, otherID)
	if err != nil {
		return nil, ErrInvalidIdentity
	}

	other, err := s.users.GetByID(ctx, otherID)
	if err != nil {
		return nil, storeErr("loading other participant", err)
	}
	if other == nil {
		return nil, ErrUserNotFound
	}

	conv, err := s.conversations.GetByPair(ctx, pair)
	if err != nil {
		return nil, storeErr("looking up conversation", err)
	}
	if conv != nil {
		return conv, nil
	}

	now := time.Now()
	conv = &domain.Conversation{
		ID:           uuid.New(),
		Participants: pair,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.conversations.Create(ctx, conv)
	if errors.Is(err, repository.ErrDuplicatePair) {
		// Lost the first-contact race; the other side's row wins.
		conv, err = s.conversations.GetByPair(ctx, pair)
		if err != nil {
			return nil, storeErr("re-fetching conversation after race", err)
		}
		if conv == nil {
			return nil, storeErr("re-fetching conversation after race", repository.ErrDuplicatePair)
		}
		return conv, nil
	}
	if err != nil {
		return nil, storeErr("creating conversation", err)
	}
	return conv, nil
}

// SendMessage appends a message to a conversation the actor belongs to.
// The message insert is the source of truth and must commit first; the
// preview-field update is a display cache and its failure is logged, not
// propagated.
func (s *ChatService) SendMessage(ctx context.Context, actorID, conversationID uuid.UUID, text, imageURL string) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	conv, err := s.loadConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if err := assertMember(conv, actorID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		SenderID:       actorID,
		Text:           text,
		ImageURL:       imageURL,
		CreatedAt:      time.Now(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, storeErr("creating message", err)
	}

	if err := s.conversations.UpdateLastMessage(ctx, conv.ID, msg.Text, msg.SenderID, msg.CreatedAt); err != nil {
		s.logger.Warnw("last-message preview update failed",
			"conversation_id", conv.ID, "error", err)
	}

	return msg, nil
}

// ListMessages returns up to limit messages in ascending creation order.
// A before cursor (a message id) pages backwards through older history.
func (s *ChatService) ListMessages(ctx context.Context, actorID, conversationID uuid.UUID, limit int, before *uuid.UUID) ([]domain.Message, error) {
	conv, err := s.loadConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if err := assertMember(conv, actorID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > MaxMessagePageSize {
		limit = MaxMessagePageSize
	}

	messages, err := s.messages.ListByConversation(ctx, conv.ID, before, limit)
	if err != nil {
		return nil, storeErr("listing messages", err)
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

// ListMyConversations returns the actor's conversations as display
// summaries, most recently active first. Filtering by participant is the
// authorization check on this path.
func (s *ChatService) ListMyConversations(ctx context.Context, actorID uuid.UUID) ([]domain.ConversationSummary, error) {
	convs, err := s.conversations.ListForParticipant(ctx, actorID)
	if err != nil {
		return nil, storeErr("listing conversations", err)
	}

	summaries := make([]domain.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summary := domain.ConversationSummary{
			ID:                conv.ID,
			OtherUserID:       conv.Participants.Other(actorID),
			LastMessageText:   conv.LastMessageText,
			LastMessageSender: conv.LastMessageSender,
			LastMessageAt:     conv.LastMessageAt,
			CreatedAt:         conv.CreatedAt,
		}
		other, err := s.users.GetByID(ctx, summary.OtherUserID)
		if err != nil {
			return nil, storeErr("loading other participant", err)
		}
		if other != nil {
			summary.OtherFullName = other.FullName
			summary.OtherUsername = other.Username
			summary.OtherAvatarURL = other.AvatarURL
			summary.OtherMood = other.Mood
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *ChatService) loadConversation(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	conv, err := s.conversations.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("loading conversation", err)
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

// assertMember is the single authorization checkpoint for operations that
// touch a specific conversation.
func assertMember(conv *domain.Conversation, actorID uuid.UUID) error {
	if !conv.Participants.Contains(actorID) {
		return ErrNotParticipant
	}
	return nil
}
