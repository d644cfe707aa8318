package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/muudhq/muud-backend/internal/domain"
	"github.com/muudhq/muud-backend/internal/repository"
)

const (
	defaultPeoplePageSize = 20
	maxPeoplePageSize     = 50
)

// PeopleService lists other members of the community for the "find
// someone to talk to" screen.
type PeopleService struct {
	users repository.UserRepository
}

func NewPeopleService(users repository.UserRepository) *PeopleService {
	return &PeopleService{users: users}
}

type PeoplePage struct {
	Page   int              `json:"page"`
	Limit  int              `json:"limit"`
	Total  int              `json:"total"`
	People []domain.Profile `json:"people"`
}

func (s *PeopleService) List(ctx context.Context, actorID uuid.UUID, page, limit int) (*PeoplePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPeoplePageSize
	}
	if limit > maxPeoplePageSize {
		limit = maxPeoplePageSize
	}

	users, total, err := s.users.List(ctx, actorID, (page-1)*limit, limit)
	if err != nil {
		return nil, storeErr("listing people", err)
	}

	people := make([]domain.Profile, 0, len(users))
	for i := range users {
		people = append(people, users[i].Profile())
	}
	return &PeoplePage{Page: page, Limit: limit, Total: total, People: people}, nil
}

func (s *PeopleService) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("loading person", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	profile := user.Profile()
	return &profile, nil
}
