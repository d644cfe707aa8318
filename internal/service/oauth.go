package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/muudhq/muud-backend/internal/domain"
)

// OAuthIdentity is what a provider token resolves to. Token verification
// against Google/Apple/Facebook is an external collaborator injected at
// construction time.
type OAuthIdentity struct {
	ProviderID    string
	Email         string
	EmailVerified bool
	FullName      string
}

type OAuthVerifier interface {
	Verify(ctx context.Context, provider, idToken string) (*OAuthIdentity, error)
}

// OAuthSignIn verifies the provider token, then finds the linked account
// or creates one lazily. Accounts created this way have no password; the
// onboarding flow collects the rest later.
func (s *AuthService) OAuthSignIn(ctx context.Context, provider, idToken string) (*AuthResponse, error) {
	identity, err := s.verifier.Verify(ctx, provider, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %s token rejected", ErrInvalidCreds, provider)
	}

	user, err := s.users.GetByProvider(ctx, provider, identity.ProviderID)
	if err != nil {
		return nil, storeErr("looking up provider account", err)
	}

	// Link to an existing password account with the same verified email.
	if user == nil && identity.Email != "" {
		existing, err := s.users.GetByEmail(ctx, strings.ToLower(identity.Email))
		if err != nil {
			return nil, storeErr("looking up email account", err)
		}
		if existing != nil {
			existing.OAuthProvider = &provider
			providerID := identity.ProviderID
			existing.OAuthProviderID = &providerID
			existing.UpdatedAt = time.Now()
			if err := s.users.Update(ctx, existing); err != nil {
				return nil, storeErr("linking provider account", err)
			}
			user = existing
		}
	}

	if user == nil {
		user, err = s.createOAuthUser(ctx, provider, identity)
		if err != nil {
			return nil, err
		}
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) createOAuthUser(ctx context.Context, provider string, identity *OAuthIdentity) (*domain.User, error) {
	now := time.Now()
	providerID := identity.ProviderID

	user := &domain.User{
		ID:              uuid.New(),
		FullName:        identity.FullName,
		Username:        oauthUsername(identity),
		IsVerified:      identity.EmailVerified,
		OAuthProvider:   &provider,
		OAuthProviderID: &providerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if identity.Email != "" {
		email := strings.ToLower(identity.Email)
		user.Email = &email
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeErr("creating oauth user", err)
	}
	return user, nil
}

// oauthUsername derives a username from the email local part, suffixed
// with a uuid fragment so collisions with existing names are unlikely.
func oauthUsername(identity *OAuthIdentity) string {
	base := "user"
	if at := strings.IndexByte(identity.Email, '@'); at > 0 {
		base = identity.Email[:at]
	}
	return fmt.Sprintf("%s_%s", base, uuid.NewString()[:8])
}
