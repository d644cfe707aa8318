package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/muudhq/muud-backend/internal/domain"
)

type TrendsRepo struct {
	mu         sync.RWMutex
	dashboards map[uuid.UUID]domain.TrendsDashboard
}

func NewTrendsRepo() *TrendsRepo {
	return &TrendsRepo{dashboards: make(map[uuid.UUID]domain.TrendsDashboard)}
}

func (r *TrendsRepo) GetByUser(_ context.Context, userID uuid.UUID) (*domain.TrendsDashboard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d, ok := r.dashboards[userID]; ok {
		return &d, nil
	}
	return nil, nil
}

func (r *TrendsRepo) Upsert(_ context.Context, dashboard *domain.TrendsDashboard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dashboards[dashboard.UserID] = *dashboard
	return nil
}
