package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muudhq/muud-backend/internal/domain"
	"github.com/muudhq/muud-backend/internal/repository"
)

const userColumns = `id, full_name, username, email, phone, password_hash, date_of_birth,
	is_verified, otp_code, otp_expires_at, bio, location, mood, avatar_url,
	onboarding, oauth_provider, oauth_provider_id, created_at, updated_at`

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	onboarding, err := json.Marshal(user.Onboarding)
	if err != nil {
		return fmt.Errorf("encoding onboarding: %w", err)
	}

	query := `
		INSERT INTO users (id, full_name, username, email, phone, password_hash, date_of_birth,
			is_verified, otp_code, otp_expires_at, bio, location, mood, avatar_url,
			onboarding, oauth_provider, oauth_provider_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err = r.pool.Exec(ctx, query,
		user.ID, user.FullName, user.Username, user.Email, user.Phone,
		user.PasswordHash, user.DateOfBirth,
		user.IsVerified, user.OTPCode, user.OTPExpiresAt,
		user.Bio, user.Location, user.Mood, user.AvatarURL,
		onboarding, user.OAuthProvider, user.OAuthProviderID,
		user.CreatedAt, user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicateUser
	}
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE phone = $1", phone)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

func (r *UserRepo) GetByProvider(ctx context.Context, provider, providerID string) (*domain.User, error) {
	return r.scanUser(ctx,
		"SELECT "+userColumns+" FROM users WHERE oauth_provider = $1 AND oauth_provider_id = $2",
		provider, providerID)
}

func (r *UserRepo) Update(ctx context.Context, user *domain.User) error {
	onboarding, err := json.Marshal(user.Onboarding)
	if err != nil {
		return fmt.Errorf("encoding onboarding: %w", err)
	}

	query := `
		UPDATE users
		SET full_name = $2, username = $3, email = $4, phone = $5, password_hash = $6,
			date_of_birth = $7, is_verified = $8, otp_code = $9, otp_expires_at = $10,
			bio = $11, location = $12, mood = $13, avatar_url = $14, onboarding = $15,
			oauth_provider = $16, oauth_provider_id = $17, updated_at = $18
		WHERE id = $1`

	_, err = r.pool.Exec(ctx, query,
		user.ID, user.FullName, user.Username, user.Email, user.Phone, user.PasswordHash,
		user.DateOfBirth, user.IsVerified, user.OTPCode, user.OTPExpiresAt,
		user.Bio, user.Location, user.Mood, user.AvatarURL, onboarding,
		user.OAuthProvider, user.OAuthProviderID, user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicateUser
	}
	return err
}

func (r *UserRepo) List(ctx context.Context, exclude uuid.UUID, offset, limit int) ([]domain.User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM users WHERE id <> $1", exclude).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + userColumns + ` FROM users
		WHERE id <> $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, exclude, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *UserRepo) scanUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	u, err := scanUserRow(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func scanUserRow(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var onboarding []byte
	err := row.Scan(
		&u.ID, &u.FullName, &u.Username, &u.Email, &u.Phone,
		&u.PasswordHash, &u.DateOfBirth,
		&u.IsVerified, &u.OTPCode, &u.OTPExpiresAt,
		&u.Bio, &u.Location, &u.Mood, &u.AvatarURL,
		&onboarding, &u.OAuthProvider, &u.OAuthProviderID,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(onboarding) > 0 {
		if err := json.Unmarshal(onboarding, &u.Onboarding); err != nil {
			return nil, fmt.Errorf("decoding onboarding: %w", err)
		}
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
