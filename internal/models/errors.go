package models

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidContent     = errors.New("invalid message content")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotAccepting       = errors.New("user is not accepting messages")
	ErrCodeExpired        = errors.New("verification code expired")
	ErrCodeInvalid        = errors.New("invalid verification code")
	ErrDeliveryFailed     = errors.New("failed to send verification email")
	ErrNotFound           = errors.New("not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrNotVerified        = errors.New("account is not verified")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
