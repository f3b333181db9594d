package auth

import "errors"

// Token validation errors. The API layer maps all of them to 401.
var (
	// ErrMissingToken is returned for an empty token string.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidToken covers malformed tokens, bad signatures and
	// unexpected signing methods.
	ErrInvalidToken = errors.New("invalid authentication token")

	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingHandle is returned for a correctly signed token whose claims
	// carry neither a handle nor a subject.
	ErrMissingHandle = errors.New("authentication token has no user handle")
)
