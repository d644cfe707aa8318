package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/muudhq/muud-backend/internal/domain"
	memoryrepo "github.com/muudhq/muud-backend/internal/repository/memory"
)

type fakeMailer struct {
	to   string
	code string
	sent int
}

func (m *fakeMailer) SendOTP(to, code string) error {
	m.to = to
	m.code = code
	m.sent++
	return nil
}

type fakeVerifier struct {
	identity *OAuthIdentity
	err      error
}

func (v *fakeVerifier) Verify(_ context.Context, _, _ string) (*OAuthIdentity, error) {
	return v.identity, v.err
}

func newAuthFixture(verifier OAuthVerifier) (*AuthService, *memoryrepo.UserRepo, *fakeMailer) {
	users := memoryrepo.NewUserRepo()
	mail := &fakeMailer{}
	return NewAuthService(users, verifier, mail, "test-secret"), users, mail
}

func TestSignup_WithEmail(t *testing.T) {
	req := require.New(t)
	svc, _, _ := newAuthFixture(nil)

	resp, err := svc.Signup(context.Background(), SignupInput{
		MobileOrEmail: "Alice@Example.com",
		FullName:      "Alice Smith",
		Username:      "alice",
		Password:      "secret123!",
		DateOfBirth:   "1995-04-02",
	})
	req.NoError(err)
	req.NotEmpty(resp.Token)
	req.NotNil(resp.User.Email)
	req.Equal("alice@example.com", *resp.User.Email)
	req.Nil(resp.User.Phone)
	req.NotEqual("secret123!", resp.User.PasswordHash)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	req.NoError(err)
	req.Equal(resp.User.ID.String(), claims["sub"])
}

func TestSignup_WithPhone(t *testing.T) {
	req := require.New(t)
	svc, _, _ := newAuthFixture(nil)

	resp, err := svc.Signup(context.Background(), SignupInput{
		MobileOrEmail: "+15551234567",
		FullName:      "Bob Jones",
		Username:      "bob",
		Password:      "secret123!",
		DateOfBirth:   "1990-01-15",
	})
	req.NoError(err)
	req.Nil(resp.User.Email)
	req.NotNil(resp.User.Phone)
	req.Equal("+15551234567", *resp.User.Phone)
}

func TestSignup_DuplicateChecks(t *testing.T) {
	req := require.New(t)
	svc, _, _ := newAuthFixture(nil)
	ctx := context.Background()

	base := SignupInput{
		MobileOrEmail: "alice@example.com",
		FullName:      "Alice Smith",
		Username:      "alice",
		Password:      "secret123!",
		DateOfBirth:   "1995-04-02",
	}
	_, err := svc.Signup(ctx, base)
	req.NoError(err)

	dup := base
	dup.MobileOrEmail = "other@example.com"
	_, err = svc.Signup(ctx, dup)
	req.ErrorIs(err, ErrUsernameTaken)

	dup = base
	dup.Username = "alice2"
	_, err = svc.Signup(ctx, dup)
	req.ErrorIs(err, ErrEmailTaken)
}

func TestLogin_RoundTrip(t *testing.T) {
	req := require.New(t)
	svc, _, _ := newAuthFixture(nil)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{
		MobileOrEmail: "alice@example.com",
		FullName:      "Alice Smith",
		Username:      "alice",
		Password:      "secret123!",
		DateOfBirth:   "1995-04-02",
	})
	req.NoError(err)

	resp, err := svc.Login(ctx, LoginInput{Identifier: "alice@example.com", Password: "secret123!"})
	req.NoError(err)
	req.Equal("alice", resp.User.Username)

	_, err = svc.Login(ctx, LoginInput{Identifier: "alice@example.com", Password: "wrong"})
	req.ErrorIs(err, ErrInvalidCreds)

	_, err = svc.Login(ctx, LoginInput{Identifier: "nobody@example.com", Password: "secret123!"})
	req.ErrorIs(err, ErrInvalidCreds)
}

func TestOTP_RoundTrip(t *testing.T) {
	req := require.New(t)
	svc, users, mail := newAuthFixture(nil)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, SignupInput{
		MobileOrEmail: "alice@example.com",
		FullName:      "Alice Smith",
		Username:      "alice",
		Password:      "secret123!",
		DateOfBirth:   "1995-04-02",
	})
	req.NoError(err)
	userID := resp.User.ID

	req.NoError(svc.SendOTP(ctx, userID))
	req.Equal(1, mail.sent)
	req.Equal("alice@example.com", mail.to)
	req.Len(mail.code, 6)

	wrong := "000000"
	if mail.code == wrong {
		wrong = "000001"
	}
	req.ErrorIs(svc.VerifyOTP(ctx, userID, wrong), ErrBadOTP)

	req.NoError(svc.VerifyOTP(ctx, userID, mail.code))

	user, err := users.GetByID(ctx, userID)
	req.NoError(err)
	req.True(user.IsVerified)
	req.Nil(user.OTPCode)

	// The code is single use.
	req.ErrorIs(svc.VerifyOTP(ctx, userID, mail.code), ErrBadOTP)
}

func TestOTP_Expired(t *testing.T) {
	req := require.New(t)
	svc, users, mail := newAuthFixture(nil)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, SignupInput{
		MobileOrEmail: "alice@example.com",
		FullName:      "Alice Smith",
		Username:      "alice",
		Password:      "secret123!",
		DateOfBirth:   "1995-04-02",
	})
	req.NoError(err)

	req.NoError(svc.SendOTP(ctx, resp.User.ID))

	user, err := users.GetByID(ctx, resp.User.ID)
	req.NoError(err)
	expired := time.Now().Add(-time.Minute)
	user.OTPExpiresAt = &expired
	req.NoError(users.Update(ctx, user))

	req.ErrorIs(svc.VerifyOTP(ctx, resp.User.ID, mail.code), ErrBadOTP)
}

func TestOAuthSignIn_CreatesAndReuses(t *testing.T) {
	req := require.New(t)
	verifier := &fakeVerifier{identity: &OAuthIdentity{
		ProviderID:    "google-123",
		Email:         "Alice@Example.com",
		EmailVerified: true,
		FullName:      "Alice Smith",
	}}
	svc, _, _ := newAuthFixture(verifier)
	ctx := context.Background()

	first, err := svc.OAuthSignIn(ctx, domain.ProviderGoogle, "token")
	req.NoError(err)
	req.True(first.User.IsVerified)
	req.NotNil(first.User.Email)
	req.Equal("alice@example.com", *first.User.Email)

	second, err := svc.OAuthSignIn(ctx, domain.ProviderGoogle, "token")
	req.NoError(err)
	req.Equal(first.User.ID, second.User.ID)
}

func TestOAuthSignIn_LinksExistingEmailAccount(t *testing.T) {
	req := require.New(t)
	verifier := &fakeVerifier{identity: &OAuthIdentity{
		ProviderID:    "google-123",
		Email:         "alice@example.com",
		EmailVerified: true,
		FullName:      "Alice Smith",
	}}
	svc, _, _ := newAuthFixture(verifier)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, SignupInput{
		MobileOrEmail: "alice@example.com",
		FullName:      "Alice Smith",
		Username:      "alice",
		Password:      "secret123!",
		DateOfBirth:   "1995-04-02",
	})
	req.NoError(err)

	resp, err := svc.OAuthSignIn(ctx, domain.ProviderGoogle, "token")
	req.NoError(err)
	req.Equal(signup.User.ID, resp.User.ID)
	req.NotNil(resp.User.OAuthProvider)
	req.Equal(domain.ProviderGoogle, *resp.User.OAuthProvider)
}

func TestOAuthSignIn_RejectedToken(t *testing.T) {
	req := require.New(t)
	verifier := &fakeVerifier{err: errors.New("bad token")}
	svc, _, _ := newAuthFixture(verifier)

	_, err := svc.OAuthSignIn(context.Background(), domain.ProviderGoogle, "token")
	req.ErrorIs(err, ErrInvalidCreds)
}
