package domain

import (
	"time"

	"github.com/google/uuid"
)

// OAuth providers accepted for social sign-in.
const (
	ProviderGoogle   = "google"
	ProviderApple    = "apple"
	ProviderFacebook = "facebook"
)

type User struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Username string    `json:"username"`
	Email    *string   `json:"email,omitempty"`
	Phone    *string   `json:"phone,omitempty"`
	// Empty for OAuth-only accounts.
	PasswordHash string     `json:"-"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`

	IsVerified   bool       `json:"is_verified"`
	OTPCode      *string    `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`

	Bio       string `json:"bio"`
	Location  string `json:"location"`
	Mood      string `json:"mood"`
	AvatarURL string `json:"avatar_url"`

	Onboarding Onboarding `json:"onboarding"`

	OAuthProvider   *string `json:"oauth_provider,omitempty"`
	OAuthProviderID *string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Onboarding holds the answers collected by the mobile onboarding flow.
// Stored as a single JSONB document on the user row.
type Onboarding struct {
	Focus                *string    `json:"focus,omitempty"`
	FavoriteColor        *string    `json:"favorite_color,omitempty"`
	Activities           []string   `json:"activities,omitempty"`
	NotificationsEnabled *bool      `json:"notifications_enabled,omitempty"`
	SupportOptions       []string   `json:"support_options,omitempty"`
	InitialMood          *string    `json:"initial_mood,omitempty"`
	PreparingChoice      *string    `json:"preparing_choice,omitempty"`
	Completed            bool       `json:"completed"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
}

// Profile is the display-safe projection of a user returned to clients.
type Profile struct {
	ID         uuid.UUID  `json:"id"`
	FullName   string     `json:"full_name"`
	Username   string     `json:"username"`
	Bio        string     `json:"bio"`
	Location   string     `json:"location"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	Mood       string     `json:"mood"`
	AvatarURL  string     `json:"avatar_url"`
	IsVerified bool       `json:"is_verified"`
	Onboarding Onboarding `json:"onboarding"`
}

func (u *User) Profile() Profile {
	p := Profile{
		ID:         u.ID,
		FullName:   u.FullName,
		Username:   u.Username,
		Bio:        u.Bio,
		Location:   u.Location,
		Mood:       u.Mood,
		AvatarURL:  u.AvatarURL,
		IsVerified: u.IsVerified,
		Onboarding: u.Onboarding,
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	return p
}
