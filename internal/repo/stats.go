// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// primarily for conditional responses (e.g., ETag generation) in the HTTP
// layer. Each function is context-aware and safe to call from services or
// handlers.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/syncback/feedback-backend/internal/domain"
)

// FeedbackStats returns cheap change-detection metadata for a business's
// dashboard: the all-time submission count and the timestamp of the most
// recent submission, both read from the summary row.
//
// When the business has never received feedback (no summary row), the
// returned count is 0 and lastAt is nil. Because the summary counters only
// grow, (count, lastAt) changes whenever the dashboard payload would.
//
// Return values:
//   - count:  all-time feedback total for businessID
//   - lastAt: pointer to the most recent submission time, or nil if none
//   - err:    database error, if any
func FeedbackStats(ctx context.Context, db *gorm.DB, businessID string) (count int64, lastAt *time.Time, err error) {
	var row struct {
		TotalCount     int64
		LastFeedbackAt time.Time
	}
	err = db.WithContext(ctx).
		Model(&domain.SummaryAggregate{}).
		Select("total_count", "last_feedback_at").
		Where("business_id = ?", businessID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil, nil
	}
	if err != nil {
		return 0, nil, err
	}
	return row.TotalCount, &row.LastFeedbackAt, nil
}
