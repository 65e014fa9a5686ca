// Package domain defines the persistence models for businesses, feedback
// submissions, and the pre-aggregated statistics maintained on every
// submission. These types are mapped with GORM and form the core data layer
// of the feedback application.
package domain

import (
	"math"
	"time"
)

// Feedback lifecycle states. New submissions always start as StatusNew;
// triage transitions (seen, archived) are a dashboard workflow and never
// touch the aggregates.
const (
	StatusNew      = "new"
	StatusSeen     = "seen"
	StatusArchived = "archived"
)

// Feedback capture channels. SourceQR is the default when the submitter
// does not declare one.
const (
	SourceQR    = "qr"
	SourceLink  = "link"
	SourceKiosk = "kiosk"
)

// Rating bounds. Ratings are star values quantized to half-star steps.
const (
	MinRating = 0.5
	MaxRating = 5.0
)

// Business represents a tenant that owns a feedback collection point.
// Each business has a unique slug used in its public feedback URL and at
// most one owner user (opaque identity-provider id).
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - OwnerUserID: identifier of the owning user; unique (one business per owner).
//   - Slug: URL-safe unique handle, embedded in the public feedback link.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Business struct {
	ID          string    `json:"id"            gorm:"type:char(36);primaryKey"`
	OwnerUserID string    `json:"owner_user_id" gorm:"type:varchar(64);not null;uniqueIndex:ux_business_owner"`
	Name        string    `json:"name"          gorm:"type:varchar(255);not null"`
	Email       string    `json:"email"         gorm:"type:varchar(255);not null"`
	Phone       string    `json:"phone"         gorm:"type:varchar(64);not null;default:''"`
	Slug        string    `json:"slug"          gorm:"type:varchar(128);not null;uniqueIndex:ux_business_slug"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Business.
func (Business) TableName() string { return "businesses" }

// Feedback represents one guest submission against a business. Rows are
// created exactly once at submission time and never mutated by the
// aggregation core; status changes are a separate triage workflow.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - BusinessID: foreign key to the receiving business (composite index
//     with CreatedAt for the bounded recent-page scan).
//   - Rating: star value in [0.5, 5.0], half-star steps.
//   - Message: non-empty, whitespace-normalized text.
//   - Status: new | seen | archived (enforced by DB constraint).
//   - Source: qr | link | kiosk capture channel.
//   - IPHash: optional salted hash of the submitter IP; never the raw address.
type Feedback struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	BusinessID string    `json:"business_id" gorm:"type:char(36);not null;index:idx_business_feedback,priority:1"`
	Rating     float64   `json:"rating"      gorm:"not null"`
	Message    string    `json:"message"     gorm:"type:text;not null"`
	Status     string    `json:"status"      gorm:"type:varchar(16);not null;default:'new';check:status IN ('new','seen','archived')"`
	Source     string    `json:"source"      gorm:"type:varchar(16);not null;default:'qr';check:source IN ('qr','link','kiosk')"`
	IPHash     *string   `json:"-"           gorm:"type:varchar(128)"`
	CreatedAt  time.Time `json:"created_at"  gorm:"index:idx_business_feedback,priority:2"`

	// Business is the receiving tenant. Feedback is cascade-deleted if the
	// business is removed.
	Business Business `json:"-" gorm:"foreignKey:BusinessID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Feedback.
func (Feedback) TableName() string { return "feedbacks" }

// DailyAggregate is the per-business, per-UTC-day rollup. Exactly one row
// exists per (business, date) with activity; it is created on the first
// submission of a day and additively patched thereafter.
//
// SumRating is stored instead of a running average so the day's mean is
// always SumRating/Count, exact and free of compounding rounding error.
type DailyAggregate struct {
	ID            string    `json:"id"              gorm:"type:char(36);primaryKey"`
	BusinessID    string    `json:"business_id"     gorm:"type:char(36);not null;uniqueIndex:ux_daily_business_date,priority:1"`
	Date          string    `json:"date"            gorm:"type:char(10);not null;uniqueIndex:ux_daily_business_date,priority:2"` // UTC YYYY-MM-DD
	Count         int64     `json:"count"           gorm:"not null;default:0"`
	SumRating     float64   `json:"sum_rating"      gorm:"not null;default:0"`
	FiveStarCount int64     `json:"five_star_count" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName returns the database table name for DailyAggregate.
func (DailyAggregate) TableName() string { return "daily_aggregates" }

// AvgRating returns the day's exact mean rating, or 0 when the day has no
// submissions.
func (d DailyAggregate) AvgRating() float64 {
	if d.Count == 0 {
		return 0
	}
	return d.SumRating / float64(d.Count)
}

// SummaryAggregate is the all-time rollup, one row per business. All
// counters are monotonically non-decreasing; readers may observe the
// summary slightly ahead of or behind the daily rows under concurrency,
// never a decreasing value.
//
// The rating histogram is stored as five bucket columns (stars1..stars5);
// bucket 0 of the conceptual 6-wide array is always zero because ratings
// start at 0.5 and round half-up to at least 1.
type SummaryAggregate struct {
	ID             string    `json:"id"               gorm:"type:char(36);primaryKey"`
	BusinessID     string    `json:"business_id"      gorm:"type:char(36);not null;uniqueIndex:ux_summary_business"`
	TotalCount     int64     `json:"total_count"      gorm:"not null;default:0"`
	TotalRatingSum float64   `json:"total_rating_sum" gorm:"not null;default:0"`
	FiveStarCount  int64     `json:"five_star_count"  gorm:"not null;default:0"`
	Stars1         int64     `json:"stars1"           gorm:"not null;default:0"`
	Stars2         int64     `json:"stars2"           gorm:"not null;default:0"`
	Stars3         int64     `json:"stars3"           gorm:"not null;default:0"`
	Stars4         int64     `json:"stars4"           gorm:"not null;default:0"`
	Stars5         int64     `json:"stars5"           gorm:"not null;default:0"`
	LastFeedbackAt time.Time `json:"last_feedback_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the database table name for SummaryAggregate.
func (SummaryAggregate) TableName() string { return "summary_aggregates" }

// Buckets returns the 6-wide rating histogram with index 0 always zero.
// Index b counts submissions whose rounded rating equals b.
func (s SummaryAggregate) Buckets() [6]int64 {
	return [6]int64{0, s.Stars1, s.Stars2, s.Stars3, s.Stars4, s.Stars5}
}

// AvgRating returns the all-time mean rating, or 0 when the business has
// never received feedback.
func (s SummaryAggregate) AvgRating() float64 {
	if s.TotalCount == 0 {
		return 0
	}
	return s.TotalRatingSum / float64(s.TotalCount)
}

// RatingBucket maps a half-star rating onto its integer star bucket in
// [1, 5]. Ties round half-up, so 4.5 lands in bucket 5. Every place that
// needs a "rounded rating" must use this function so the 5-star-share
// accounting stays consistent across the daily and summary folds.
func RatingBucket(rating float64) int {
	b := int(math.Floor(rating + 0.5))
	if b < 1 {
		b = 1
	}
	if b > 5 {
		b = 5
	}
	return b
}

// ValidSource reports whether s is a recognized capture channel.
func ValidSource(s string) bool {
	switch s {
	case SourceQR, SourceLink, SourceKiosk:
		return true
	}
	return false
}
