// Package common defines shared sentinel errors used across the storefront
// server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Cart-specific errors.
	ErrInvalidAction = errors.New("invalid action")
	ErrEmptyCart     = errors.New("cart is empty")
)
