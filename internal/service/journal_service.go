package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/muudhq/muud-backend/internal/domain"
	"github.com/muudhq/muud-backend/internal/repository"
)

// ErrEmptyJournal is returned when neither a caption nor an image is
// provided.
var ErrEmptyJournal = errors.New("journal needs a caption or an image")

type JournalService struct {
	journals repository.JournalRepository
}

func NewJournalService(journals repository.JournalRepository) *JournalService {
	return &JournalService{journals: journals}
}

type JournalInput struct {
	ImageURL   string `json:"image_url"`
	Caption    string `json:"caption"`
	Visibility string `json:"visibility"`
	Emoji      string `json:"emoji"`
}

func (s *JournalService) Create(ctx context.Context, userID uuid.UUID, input JournalInput) (*domain.Journal, error) {
	caption := strings.TrimSpace(input.Caption)
	if caption == "" && input.ImageURL == "" {
		return nil, ErrEmptyJournal
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = domain.VisibilityPublic
	}

	now := time.Now()
	journal := &domain.Journal{
		ID:         uuid.New(),
		UserID:     userID,
		ImageURL:   input.ImageURL,
		Caption:    caption,
		Visibility: visibility,
		Emoji:      input.Emoji,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.journals.Create(ctx, journal); err != nil {
		return nil, storeErr("creating journal", err)
	}
	return journal, nil
}

func (s *JournalService) ListMine(ctx context.Context, userID uuid.UUID) ([]domain.Journal, error) {
	journals, err := s.journals.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("listing journals", err)
	}
	if journals == nil {
		journals = []domain.Journal{}
	}
	return journals, nil
}
