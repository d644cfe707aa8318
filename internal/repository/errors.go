package repository

import "errors"

var (
	// ErrDuplicatePair is returned when a conversation insert loses the
	// first-contact race: another request already created the conversation
	// for the same canonical participant pair. Callers re-fetch and use
	// the winner; this is the expected outcome of the race, not a fault.
	ErrDuplicatePair = errors.New("conversation already exists for participant pair")

	// ErrDuplicateUser is returned when a user insert violates one of the
	// unique identity columns (username, email, phone, provider id).
	ErrDuplicateUser = errors.New("user already exists")
)
