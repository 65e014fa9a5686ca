// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the two
// pre-aggregated statistics tables: the per-day rollup (DailyAggregate) and
// the all-time summary (SummaryAggregate).
//
// All patch operations are expressed as additive SQL increments
// (gorm.Expr("count + ?", 1) and friends) rather than read-modify-write from
// Go, so two folds racing on the same row cannot lose an update. The service
// layer still wraps each submission's insert-or-patch pair in one transaction
// so the record and both aggregates commit or roll back together.
package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/syncback/feedback-backend/internal/domain"
)

// GetDailyAggregate fetches the rollup row for (businessID, date), where date
// is the UTC YYYY-MM-DD key. Returns ErrNotFound when the business has no
// activity on that day yet.
func GetDailyAggregate(ctx context.Context, db *gorm.DB, businessID, date string) (*domain.DailyAggregate, error) {
	var d domain.DailyAggregate
	err := db.WithContext(ctx).
		Where("business_id = ? AND date = ?", businessID, date).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDailyAggregate inserts the first rollup row of a business-day,
// seeded with a single rating.
func CreateDailyAggregate(ctx context.Context, db *gorm.DB, businessID, date string, rating float64, fiveStarInc int64, createdAt time.Time) (*domain.DailyAggregate, error) {
	d := &domain.DailyAggregate{
		ID:            uuid.NewString(),
		BusinessID:    businessID,
		Date:          date,
		Count:         1,
		SumRating:     rating,
		FiveStarCount: fiveStarInc,
		CreatedAt:     createdAt,
	}
	if err := db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// IncrementDailyAggregate folds one rating into an existing rollup row.
// Increments are applied in SQL; the mean stays derivable as sum/count with
// no averaged-of-averages drift.
func IncrementDailyAggregate(ctx context.Context, db *gorm.DB, id string, rating float64, fiveStarInc int64) error {
	res := db.WithContext(ctx).
		Model(&domain.DailyAggregate{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"count":           gorm.Expr("count + ?", 1),
			"sum_rating":      gorm.Expr("sum_rating + ?", rating),
			"five_star_count": gorm.Expr("five_star_count + ?", fiveStarInc),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListDailyAggregatesPage returns one page of rollup rows for a business,
// ordered by date descending. Callers paginate backward only until the
// page's oldest date predates their window floor; the full history is never
// scanned.
func ListDailyAggregatesPage(ctx context.Context, db *gorm.DB, businessID string, offset, limit int) ([]domain.DailyAggregate, error) {
	var out []domain.DailyAggregate
	err := db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("date DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetSummary fetches the all-time summary row for a business, or ErrNotFound
// when the business has never received feedback. The absence of a summary is
// a normal state, not an error condition, and callers treat it as all-zero.
func GetSummary(ctx context.Context, db *gorm.DB, businessID string) (*domain.SummaryAggregate, error) {
	var s domain.SummaryAggregate
	err := db.WithContext(ctx).
		Where("business_id = ?", businessID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSummary inserts the summary row for a business's first-ever
// submission: one count, the rating as the running sum, and a histogram with
// a single occupied bucket.
func CreateSummary(ctx context.Context, db *gorm.DB, businessID string, rating float64, bucket int, now time.Time) (*domain.SummaryAggregate, error) {
	col, err := bucketColumn(bucket)
	if err != nil {
		return nil, err
	}
	s := &domain.SummaryAggregate{
		ID:             uuid.NewString(),
		BusinessID:     businessID,
		TotalCount:     1,
		TotalRatingSum: rating,
		LastFeedbackAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if bucket == 5 {
		s.FiveStarCount = 1
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	// Seed the bucket column by name to keep a single source of truth for
	// the bucket -> column mapping.
	res := db.WithContext(ctx).
		Model(&domain.SummaryAggregate{}).
		Where("id = ?", s.ID).
		UpdateColumn(col, 1)
	if res.Error != nil {
		return nil, res.Error
	}
	return GetSummary(ctx, db, businessID)
}

// IncrementSummary folds one rating into an existing summary row: count,
// running sum, the matching histogram bucket, the 5-star counter when the
// bucket is 5, and the last-feedback timestamp.
func IncrementSummary(ctx context.Context, db *gorm.DB, id string, rating float64, bucket int, now time.Time) error {
	col, err := bucketColumn(bucket)
	if err != nil {
		return err
	}
	updates := map[string]any{
		"total_count":      gorm.Expr("total_count + ?", 1),
		"total_rating_sum": gorm.Expr("total_rating_sum + ?", rating),
		"last_feedback_at": now,
		"updated_at":       now,
		col:                gorm.Expr(col+" + ?", 1),
	}
	if bucket == 5 {
		updates["five_star_count"] = gorm.Expr("five_star_count + ?", 1)
	}
	res := db.WithContext(ctx).
		Model(&domain.SummaryAggregate{}).
		Where("id = ?", id).
		UpdateColumns(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// bucketColumn maps an integer star bucket onto its histogram column.
// Bucket 0 has no column: ratings start at 0.5 and round half-up to >= 1.
func bucketColumn(bucket int) (string, error) {
	if bucket < 1 || bucket > 5 {
		return "", fmt.Errorf("rating bucket out of range: %d", bucket)
	}
	return fmt.Sprintf("stars%d", bucket), nil
}
