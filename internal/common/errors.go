package common

import "errors"

var (
	// Repository-level errors. ErrorNotFound also covers owner mismatches:
	// a record that exists but belongs to someone else must be
	// indistinguishable from one that does not exist.
	ErrorNotFound = errors.New("not found")

	// Caller errors (malformed amount, date, interval, field).
	ErrorInvalidInput = errors.New("invalid input")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Share-link password gate. Covers both a missing and a wrong password
	// so the response cannot reveal which one it was.
	ErrorIncorrectPassword = errors.New("incorrect password")

	// A stored note cannot be decrypted (wrong key, truncated or corrupted
	// ciphertext). Server-side condition, not a caller error.
	ErrorUnreadable = errors.New("note unreadable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Registration conflicts.
	ErrorAlreadyExists = errors.New("already exists")
)
