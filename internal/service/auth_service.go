package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/muudhq/muud-backend/internal/domain"
	"github.com/muudhq/muud-backend/internal/mailer"
	"github.com/muudhq/muud-backend/internal/repository"
)

const (
	tokenLifetime = 30 * 24 * time.Hour
	otpLifetime   = 10 * time.Minute
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthService struct {
	users     repository.UserRepository
	verifier  OAuthVerifier
	mail      mailer.Mailer
	jwtSecret []byte
}

func NewAuthService(users repository.UserRepository, verifier OAuthVerifier, mail mailer.Mailer, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		verifier:  verifier,
		mail:      mail,
		jwtSecret: []byte(jwtSecret),
	}
}

type SignupInput struct {
	MobileOrEmail string `json:"mobile_or_email"`
	FullName      string `json:"full_name"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	DateOfBirth   string `json:"date_of_birth"`
}

type LoginInput struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Signup registers a password account. The single mobile-or-email field
// is routed to the email or phone column based on its shape, matching
// the mobile signup screen.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResponse, error) {
	username := strings.TrimSpace(input.Username)
	identifier := strings.TrimSpace(input.MobileOrEmail)

	dob, err := parseDateOfBirth(input.DateOfBirth)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, storeErr("checking username", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	var email, phone *string
	if emailPattern.MatchString(identifier) {
		lowered := strings.ToLower(identifier)
		existing, err := s.users.GetByEmail(ctx, lowered)
		if err != nil {
			return nil, storeErr("checking email", err)
		}
		if existing != nil {
			return nil, ErrEmailTaken
		}
		email = &lowered
	} else {
		existing, err := s.users.GetByPhone(ctx, identifier)
		if err != nil {
			return nil, storeErr("checking phone", err)
		}
		if existing != nil {
			return nil, ErrPhoneTaken
		}
		phone = &identifier
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		FullName:     input.FullName,
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		DateOfBirth:  &dob,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrUsernameTaken
		}
		return nil, storeErr("creating user", err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	return &AuthResponse{User: user, Token: token}, nil
}

// Login authenticates by email or phone. Unknown identifier and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	identifier := strings.TrimSpace(input.Identifier)

	var user *domain.User
	var err error
	if emailPattern.MatchString(identifier) {
		user, err = s.users.GetByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = s.users.GetByPhone(ctx, identifier)
	}
	if err != nil {
		return nil, storeErr("loading user", err)
	}
	if user == nil || user.PasswordHash == "" || !verifyPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCreds
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	return &AuthResponse{User: user, Token: token}, nil
}

// SendOTP issues a fresh 6-digit verification code and mails it to the
// account's email address.
func (s *AuthService) SendOTP(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return storeErr("loading user", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Email == nil {
		return ErrNoEmail
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generating otp: %w", err)
	}
	expires := time.Now().Add(otpLifetime)
	user.OTPCode = &code
	user.OTPExpiresAt = &expires
	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return storeErr("storing otp", err)
	}

	if err := s.mail.SendOTP(*user.Email, code); err != nil {
		return fmt.Errorf("sending otp email: %w", err)
	}
	return nil
}

// VerifyOTP checks the submitted code and marks the account verified.
func (s *AuthService) VerifyOTP(ctx context.Context, userID uuid.UUID, code string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return storeErr("loading user", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.OTPCode == nil || user.OTPExpiresAt == nil ||
		time.Now().After(*user.OTPExpiresAt) ||
		subtle.ConstantTimeCompare([]byte(*user.OTPCode), []byte(code)) != 1 {
		return ErrBadOTP
	}

	user.IsVerified = true
	user.OTPCode = nil
	user.OTPExpiresAt = nil
	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return storeErr("marking verified", err)
	}
	return nil
}

func (s *AuthService) generateToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(tokenLifetime).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func parseDateOfBirth(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date of birth %q", raw)
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)

	return fmt.Sprintf("%s:%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func verifyPassword(password, encoded string) bool {
	saltB64, hashB64, ok := strings.Cut(encoded, ":")
	if !ok {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return false
	}

	expected, err := base64.RawStdEncoding.DecodeString(hashB64)
	if err != nil {
		return false
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return subtle.ConstantTimeCompare(hash, expected) == 1
}
