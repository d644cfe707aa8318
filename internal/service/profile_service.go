package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/muudhq/muud-backend/internal/domain"
	"github.com/muudhq/muud-backend/internal/repository"
)

type ProfileService struct {
	users repository.UserRepository
}

func NewProfileService(users repository.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// ProfileUpdate carries the fields the app may change; nil means leave
// untouched. Anything outside this allow-list is not writable from the
// profile screen.
type ProfileUpdate struct {
	FullName  *string `json:"full_name"`
	Username  *string `json:"username"`
	Bio       *string `json:"bio"`
	Location  *string `json:"location"`
	Phone     *string `json:"phone"`
	Mood      *string `json:"mood"`
	AvatarURL *string `json:"avatar_url"`
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.Profile, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.Location != nil {
		user.Location = *update.Location
	}
	if update.Phone != nil {
		user.Phone = update.Phone
	}
	if update.Mood != nil {
		user.Mood = *update.Mood
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, storeErr("updating profile", err)
	}
	profile := user.Profile()
	return &profile, nil
}

// SetOnboarding replaces the whole onboarding document, the way the app
// submits the flow in one shot.
func (s *ProfileService) SetOnboarding(ctx context.Context, userID uuid.UUID, onboarding domain.Onboarding) (*domain.Profile, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if onboarding.Completed && onboarding.CompletedAt == nil {
		now := time.Now()
		onboarding.CompletedAt = &now
	}
	user.Onboarding = onboarding
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, storeErr("updating onboarding", err)
	}
	profile := user.Profile()
	return &profile, nil
}

func (s *ProfileService) loadUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr("loading user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
