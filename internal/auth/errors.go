package auth

import "errors"

var (
	// ErrUnauthorized means the request carries no usable identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the identity is valid but lacks a required role.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidToken covers every token failure: structure, signature,
	// algorithm, expiry. Callers must not be able to tell these apart.
	ErrInvalidToken = errors.New("invalid token")
)
