// Package services – FeedbackService
//
// This file implements the FeedbackService, which governs how guests submit
// feedback against a business's public slug. It enforces input rules (rating
// range and half-star quantization, non-empty message, known business) and
// persists the raw record together with both incremental aggregate folds in
// a single database transaction, so a submission is either fully applied or
// not applied at all. Service-level errors (e.g. ErrInvalidRating,
// ErrEmptyMessage, ErrBusinessNotFound) are returned for predictable cases
// so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"math"
	"net/http"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/syncback/feedback-backend/internal/domain"
	"github.com/syncback/feedback-backend/internal/repo"
)

// ratingStepTolerance bounds the floating-point slack allowed when checking
// that rating*2 is an integer (i.e. the rating is a 0.5 multiple).
const ratingStepTolerance = 1e-8

// Submission carries one guest feedback submission into the service.
type Submission struct {
	// Slug identifies the receiving business via its public feedback link.
	Slug string
	// Rating is the star value in [0.5, 5.0], half-star steps.
	Rating float64
	// Message is the free-text feedback; normalized before validation.
	Message string
	// Source is the capture channel (qr, link, kiosk); empty defaults to qr.
	Source string
	// IPHash is an optional salted hash of the submitter IP, never raw.
	IPHash *string
	// IdempotencyKey, when non-empty, deduplicates retries: a replay within
	// the TTL returns the originally created feedback id without re-folding
	// the aggregates.
	IdempotencyKey string
}

// FeedbackService implements the ingestion use-case: validate one
// submission, persist the immutable record, and fold it into the daily and
// summary aggregates. It is context-aware and opens its own transaction per
// call.
type FeedbackService struct {
	// DB is the database handle used for all submission operations.
	// The handle may be a plain *gorm.DB or a transaction-bound handle.
	DB *gorm.DB

	// IdempotencyTTL is how long a submitted Idempotency-Key stays
	// replayable. Zero or negative disables the replay window.
	IdempotencyTTL time.Duration

	// Now overrides the clock, for tests. Nil means time.Now.
	Now func() time.Time
}

// Submit validates and persists one feedback submission and returns the new
// feedback record's id.
//
// Semantics and validation:
//   - Rating must lie in [0.5, 5.0] and be a 0.5 multiple (within a 1e-8
//     tolerance on rating*2); otherwise ErrInvalidRating.
//   - Message must be non-empty after whitespace normalization; otherwise
//     ErrEmptyMessage.
//   - Source must be empty (defaults to qr) or a known channel; otherwise
//     ErrInvalidSource.
//   - Slug must resolve to a business; otherwise ErrBusinessNotFound.
//
// Concurrency & atomicity:
//   - The record insert, the daily-aggregate fold, and the summary fold run
//     inside one transaction. A failure in any step rolls back all of them,
//     so retrying a failed submission never double-counts.
//   - Aggregate patches are additive SQL increments, so concurrent
//     submissions for the same business cannot lose updates.
//
// Errors:
//   - Returns the service-level sentinel errors for the validation cases
//     above, and the underlying DB error for unexpected failures.
func (s *FeedbackService) Submit(ctx context.Context, sub Submission) (string, error) {
	if err := validateRating(sub.Rating); err != nil {
		observeSubmission(sub.Source, outcomeRejected)
		return "", err
	}
	message := normalizeMessage(sub.Message)
	if message == "" {
		observeSubmission(sub.Source, outcomeRejected)
		return "", ErrEmptyMessage
	}
	source := sub.Source
	if source == "" {
		source = domain.SourceQR
	}
	if !domain.ValidSource(source) {
		observeSubmission(sub.Source, outcomeRejected)
		return "", ErrInvalidSource
	}

	now := s.now()
	var feedbackID string

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		business, err := repo.GetBusinessBySlug(ctx, tx, sub.Slug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBusinessNotFound
			}
			return err
		}

		// Replay check: a repeated key within the TTL short-circuits to the
		// originally created record.
		if sub.IdempotencyKey != "" && s.IdempotencyTTL > 0 {
			if rec, err := repo.GetIdempotency(ctx, tx, business.ID, sub.IdempotencyKey, now); err == nil && rec != nil {
				feedbackID = rec.FeedbackID
				return nil
			}
		}

		fb, err := repo.CreateFeedback(ctx, tx, business.ID, sub.Rating, message, source, sub.IPHash, now)
		if err != nil {
			return err
		}
		feedbackID = fb.ID

		if err := applyAggregates(ctx, tx, business.ID, sub.Rating, now); err != nil {
			return err
		}

		if sub.IdempotencyKey != "" && s.IdempotencyTTL > 0 {
			if _, err := repo.CreateIdempotency(ctx, tx, business.ID, sub.IdempotencyKey, fb.ID, http.StatusCreated, s.IdempotencyTTL); err != nil && !errors.Is(err, repo.ErrDuplicate) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBusinessNotFound):
			observeSubmission(source, outcomeRejected)
		default:
			observeSubmission(source, outcomeError)
		}
		return "", err
	}

	observeSubmission(source, outcomeAccepted)
	return feedbackID, nil
}

// applyAggregates folds one rating into the daily rollup and the all-time
// summary for a business. Both folds are additive; neither ever revisits the
// raw feedback history.
func applyAggregates(ctx context.Context, tx *gorm.DB, businessID string, rating float64, now time.Time) error {
	date := DateKey(now)
	bucket := domain.RatingBucket(rating)
	var fiveStarInc int64
	if bucket == 5 {
		fiveStarInc = 1
	}

	daily, err := repo.GetDailyAggregate(ctx, tx, businessID, date)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := repo.CreateDailyAggregate(ctx, tx, businessID, date, rating, fiveStarInc, now); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if err := repo.IncrementDailyAggregate(ctx, tx, daily.ID, rating, fiveStarInc); err != nil {
			return err
		}
	}

	summary, err := repo.GetSummary(ctx, tx, businessID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := repo.CreateSummary(ctx, tx, businessID, rating, bucket, now); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if err := repo.IncrementSummary(ctx, tx, summary.ID, rating, bucket, now); err != nil {
			return err
		}
	}
	return nil
}

// DateKey formats a timestamp as its UTC calendar day, the key of the daily
// rollup table.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// validateRating checks the rating range and half-star quantization.
func validateRating(rating float64) error {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return ErrInvalidRating
	}
	doubled := rating * 2
	if math.Abs(doubled-math.Round(doubled)) > ratingStepTolerance {
		return ErrInvalidRating
	}
	return nil
}

// normalizeMessage trims the message and collapses whitespace runs (including
// newlines) to single spaces, matching how the public form sanitizes input.
func normalizeMessage(s string) string {
	return messageWhitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}

// messageWhitespaceRE collapses consecutive whitespace to a single space.
var messageWhitespaceRE = regexp.MustCompile(`\s+`)

func (s *FeedbackService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
