// Package common defines shared sentinel errors and small helpers used
// across the MarketFeed client layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Input validation.
	ErrValidation       = errors.New("all fields are required")
	ErrPasswordMismatch = errors.New("passwords do not match")

	// Identity errors.
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrEmailConflict      = errors.New("email already in use")

	// External identity provider never became ready.
	ErrProviderUnavailable = errors.New("identity provider unavailable")

	// Feed errors.
	ErrNoImpactSelected = errors.New("select market impact")
	ErrEmptyPost        = errors.New("add content or media")
	ErrPostNotFound     = errors.New("post not found")
	ErrEmptyComment     = errors.New("comment empty")

	// Media errors.
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrMediaTooLarge    = errors.New("media too large")
)
