package service

import (
	"errors"
	"fmt"
)

var (
	// Chat.
	ErrInvalidIdentity      = errors.New("invalid participant identity")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("not a participant of this conversation")
	ErrEmptyMessage         = errors.New("message text is required")

	// Auth.
	ErrInvalidCreds  = errors.New("invalid credentials")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already in use")
	ErrPhoneTaken    = errors.New("phone already in use")
	ErrNoEmail       = errors.New("account has no email address")
	ErrBadOTP        = errors.New("invalid or expired verification code")

	ErrUserNotFound = errors.New("user not found")

	// ErrStoreUnavailable wraps persistence failures. It is never retried
	// here; callers map it to a server error.
	ErrStoreUnavailable = errors.New("store unavailable")
)

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrStoreUnavailable, err))
}
