// Package memory provides in-process repository implementations that
// mirror the postgres uniqueness and ordering guarantees. They back the
// service and handler tests so no database is needed.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/muudhq/muud-backend/internal/domain"
	"github.com/muudhq/muud-backend/internal/repository"
)

type UserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]domain.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[uuid.UUID]domain.User)}
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username ||
			(user.Email != nil && u.Email != nil && *u.Email == *user.Email) ||
			(user.Phone != nil && u.Phone != nil && *u.Phone == *user.Phone) {
			return repository.ErrDuplicateUser
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email != nil && *u.Email == email })
}

func (r *UserRepo) GetByPhone(_ context.Context, phone string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Phone != nil && *u.Phone == phone })
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Username == username })
}

func (r *UserRepo) GetByProvider(_ context.Context, provider, providerID string) (*domain.User, error) {
	return r.find(func(u domain.User) bool {
		return u.OAuthProvider != nil && *u.OAuthProvider == provider &&
			u.OAuthProviderID != nil && *u.OAuthProviderID == providerID
	})
}

func (r *UserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepo) List(_ context.Context, exclude uuid.UUID, offset, limit int) ([]domain.User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []domain.User
	for id, u := range r.users {
		if id != exclude {
			all = append(all, u)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *UserRepo) find(match func(domain.User) bool) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}
