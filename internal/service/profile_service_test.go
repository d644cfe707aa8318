package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/muudhq/muud-backend/internal/domain"
	memoryrepo "github.com/muudhq/muud-backend/internal/repository/memory"
)

func newProfileFixture(t *testing.T) (*ProfileService, uuid.UUID) {
	t.Helper()
	users := memoryrepo.NewUserRepo()
	user := &domain.User{
		ID:        uuid.New(),
		FullName:  "Alice Smith",
		Username:  "alice",
		Bio:       "hello",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, users.Create(context.Background(), user))
	return NewProfileService(users), user.ID
}

func TestProfileUpdate_OnlyProvidedFields(t *testing.T) {
	req := require.New(t)
	svc, userID := newProfileFixture(t)
	ctx := context.Background()

	mood := "Calm"
	profile, err := svc.Update(ctx, userID, ProfileUpdate{Mood: &mood})
	req.NoError(err)
	req.Equal("Calm", profile.Mood)
	req.Equal("Alice Smith", profile.FullName)
	req.Equal("hello", profile.Bio)
}

func TestProfileUpdate_UnknownUser(t *testing.T) {
	req := require.New(t)
	svc, _ := newProfileFixture(t)

	_, err := svc.Get(context.Background(), uuid.New())
	req.ErrorIs(err, ErrUserNotFound)
}

func TestSetOnboarding_StampsCompletedAt(t *testing.T) {
	req := require.New(t)
	svc, userID := newProfileFixture(t)
	ctx := context.Background()

	focus := "Reduce stress"
	profile, err := svc.SetOnboarding(ctx, userID, domain.Onboarding{
		Focus:     &focus,
		Completed: true,
	})
	req.NoError(err)
	req.True(profile.Onboarding.Completed)
	req.NotNil(profile.Onboarding.CompletedAt)

	// An incomplete flow carries no completion stamp.
	focus = "Sleep better"
	profile, err = svc.SetOnboarding(ctx, userID, domain.Onboarding{Focus: &focus})
	req.NoError(err)
	req.False(profile.Onboarding.Completed)
	req.Nil(profile.Onboarding.CompletedAt)
}
