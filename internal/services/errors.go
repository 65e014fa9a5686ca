// Package services defines the business logic for feedback ingestion,
// aggregate maintenance, and dashboard projection. This file centralizes
// common service-level error values so that they can be consistently
// returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrInvalidRating is returned when a submission's rating is outside
	// [0.5, 5.0] or is not a multiple of 0.5 stars.
	ErrInvalidRating = errors.New("rating must be between 0.5 and 5 in half-star steps")

	// ErrEmptyMessage is returned when a submission's message is empty after
	// whitespace normalization.
	ErrEmptyMessage = errors.New("feedback message cannot be empty")

	// ErrInvalidSource is returned when a submission declares a capture
	// channel outside the known set (qr, link, kiosk).
	ErrInvalidSource = errors.New("unknown feedback source")

	// ErrBusinessNotFound indicates that no business matches the requested
	// slug or owner.
	ErrBusinessNotFound = errors.New("business not found")

	// ErrInvalidProfile is returned when a business profile upsert is
	// missing required fields (name or email).
	ErrInvalidProfile = errors.New("business name and email are required")
)
