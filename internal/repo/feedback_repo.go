// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Feedback
// model.
//
// The repository follows a "thin" approach: it performs persistence and simple
// query composition, leaving validation and aggregate folding to the services
// package.
//
// Error semantics:
//   - On DB errors (connectivity, constraints, etc.), the raw gorm error is
//     propagated. A dropped insert must never silently report success, so no
//     error is swallowed here.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/syncback/feedback-backend/internal/domain"
)

// CreateFeedback inserts one immutable feedback row for the given business.
// createdAt is taken from the caller so the record and both aggregate folds
// of the same submission share a single timestamp.
func CreateFeedback(ctx context.Context, db *gorm.DB, businessID string, rating float64, message, source string, ipHash *string, createdAt time.Time) (*domain.Feedback, error) {
	f := &domain.Feedback{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		Rating:     rating,
		Message:    message,
		Status:     domain.StatusNew,
		Source:     source,
		IPHash:     ipHash,
		CreatedAt:  createdAt,
	}
	if err := db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

// ListRecentFeedback returns the most recent page of raw feedback rows for a
// business, newest first, via the business+created_at composite index. The
// page is bounded by limit; this is a display query, never an aggregate scan.
func ListRecentFeedback(ctx context.Context, db *gorm.DB, businessID string, limit int) ([]domain.Feedback, error) {
	var out []domain.Feedback
	q := db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// CountFeedback uses a raw COUNT so a missing table surfaces as an error.
// Aggregate reads should prefer SummaryAggregate.TotalCount; this exists for
// reconciliation checks against the live counters.
func CountFeedback(ctx context.Context, db *gorm.DB, businessID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM feedbacks WHERE business_id = ?", businessID).
		Scan(&total).Error
	return total, err
}
