package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/muudhq/muud-backend/internal/domain"
)

type JournalRepo struct {
	mu       sync.RWMutex
	journals []domain.Journal
}

func NewJournalRepo() *JournalRepo {
	return &JournalRepo{}
}

func (r *JournalRepo) Create(_ context.Context, journal *domain.Journal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.journals = append(r.journals, *journal)
	return nil
}

func (r *JournalRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Journal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Journal
	for _, j := range r.journals {
		if j.UserID == userID {
			result = append(result, j)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}
