package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muudhq/muud-backend/internal/domain"
)

// TrendsRepo stores one dashboard document per user as JSONB.
type TrendsRepo struct {
	pool *pgxpool.Pool
}

func NewTrendsRepo(pool *pgxpool.Pool) *TrendsRepo {
	return &TrendsRepo{pool: pool}
}

func (r *TrendsRepo) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.TrendsDashboard, error) {
	var doc []byte
	var d domain.TrendsDashboard
	err := r.pool.QueryRow(ctx,
		"SELECT doc, created_at, updated_at FROM trends_dashboards WHERE user_id = $1", userID,
	).Scan(&doc, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, fmt.Errorf("decoding dashboard: %w", err)
	}
	d.UserID = userID
	return &d, nil
}

func (r *TrendsRepo) Upsert(ctx context.Context, dashboard *domain.TrendsDashboard) error {
	doc, err := json.Marshal(dashboard)
	if err != nil {
		return fmt.Errorf("encoding dashboard: %w", err)
	}

	query := `
		INSERT INTO trends_dashboards (user_id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`
	_, err = r.pool.Exec(ctx, query, dashboard.UserID, doc, dashboard.CreatedAt, dashboard.UpdatedAt)
	return err
}
