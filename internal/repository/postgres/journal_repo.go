package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muudhq/muud-backend/internal/domain"
)

type JournalRepo struct {
	pool *pgxpool.Pool
}

func NewJournalRepo(pool *pgxpool.Pool) *JournalRepo {
	return &JournalRepo{pool: pool}
}

func (r *JournalRepo) Create(ctx context.Context, journal *domain.Journal) error {
	query := `
		INSERT INTO journals (id, user_id, image_url, caption, visibility, emoji, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		journal.ID, journal.UserID, journal.ImageURL, journal.Caption,
		journal.Visibility, journal.Emoji, journal.CreatedAt, journal.UpdatedAt,
	)
	return err
}

func (r *JournalRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Journal, error) {
	query := `
		SELECT id, user_id, image_url, caption, visibility, emoji, created_at, updated_at
		FROM journals
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var journals []domain.Journal
	for rows.Next() {
		var j domain.Journal
		if err := rows.Scan(
			&j.ID, &j.UserID, &j.ImageURL, &j.Caption,
			&j.Visibility, &j.Emoji, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, err
		}
		journals = append(journals, j)
	}
	return journals, rows.Err()
}
