package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end time before start time).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrAlreadyExists is returned when creating a promo code whose normalized
// code is already taken. Handlers should map this to HTTP 400.
var ErrAlreadyExists = errors.New("already exists")

// Promo apply failures. Validate never returns these — it reports the same
// conditions as a structured invalid result instead, so discovery calls are
// side-effect-free and need no error handling by API consumers.
// Handlers map all three to HTTP 400.
var (
	ErrPromoExpired      = errors.New("promo code expired")
	ErrPromoLimitReached = errors.New("promo code usage limit reached")
	ErrPromoBelowMinimum = errors.New("order amount below promo minimum")
)
