package model

import "errors"

// Common errors used across the application
var (
	// Invite errors
	ErrInviteNotFound = errors.New("invite not found")

	// Identity errors
	ErrNoIdentity = errors.New("no identity in session")

	// Timestamp errors
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)
