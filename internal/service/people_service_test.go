package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/muudhq/muud-backend/internal/domain"
	memoryrepo "github.com/muudhq/muud-backend/internal/repository/memory"
)

func TestPeopleList_ExcludesCallerAndPaginates(t *testing.T) {
	req := require.New(t)
	users := memoryrepo.NewUserRepo()
	ctx := context.Background()

	var actorID uuid.UUID
	for i := 0; i < 5; i++ {
		user := &domain.User{
			ID:        uuid.New(),
			FullName:  fmt.Sprintf("User %d", i),
			Username:  fmt.Sprintf("user%d", i),
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
			UpdatedAt: time.Now(),
		}
		req.NoError(users.Create(ctx, user))
		if i == 0 {
			actorID = user.ID
		}
	}

	svc := NewPeopleService(users)

	page, err := svc.List(ctx, actorID, 1, 3)
	req.NoError(err)
	req.Equal(4, page.Total)
	req.Len(page.People, 3)
	for _, p := range page.People {
		req.NotEqual(actorID, p.ID)
	}

	page, err = svc.List(ctx, actorID, 2, 3)
	req.NoError(err)
	req.Len(page.People, 1)

	// Out-of-range page and limit fall back to sane values.
	page, err = svc.List(ctx, actorID, 0, maxPeoplePageSize+1)
	req.NoError(err)
	req.Equal(1, page.Page)
	req.Equal(maxPeoplePageSize, page.Limit)
}

func TestPeopleGet(t *testing.T) {
	req := require.New(t)
	users := memoryrepo.NewUserRepo()
	ctx := context.Background()

	user := &domain.User{
		ID:        uuid.New(),
		FullName:  "Bob Jones",
		Username:  "bob",
		Mood:      "Happy",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	req.NoError(users.Create(ctx, user))

	svc := NewPeopleService(users)

	profile, err := svc.Get(ctx, user.ID)
	req.NoError(err)
	req.Equal("bob", profile.Username)
	req.Equal("Happy", profile.Mood)

	_, err = svc.Get(ctx, uuid.New())
	req.ErrorIs(err, ErrUserNotFound)
}
