// Package services – DashboardService
//
// This file implements the metrics projector: it combines the all-time
// summary, a bounded window of daily rollups, and one bounded page of raw
// recent records into the dashboard payload. Headline KPIs compare the
// trailing 30-day window against the 30 days before it, the trend covers the
// trailing six calendar months, and the distribution is derived from the
// summary's rating histogram. The projector never blocks writers and never
// fails on an empty business; zero data is a normal state rendered as an
// empty payload.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/syncback/feedback-backend/internal/domain"
	"github.com/syncback/feedback-backend/internal/repo"
	"github.com/syncback/feedback-backend/internal/utils"
)

// Defaults for the projector's bounded reads.
const (
	// DefaultRecentLimit bounds the raw-record page backing the recent lists.
	DefaultRecentLimit = 200
	// defaultScanPageSize is the daily-rollup page size for the windowed scan.
	defaultScanPageSize = 90
	// trendMonths is the trailing calendar-month span of the trend series,
	// including the current partial month.
	trendMonths = 6
	// periodDays is the width of the current and previous KPI windows.
	periodDays = 30
)

// Metric is one headline KPI card: a formatted display value plus the
// period-over-period percent change.
type Metric struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Value string `json:"value"`
	Diff  int    `json:"diff"`
}

// TrendPoint is one month of the rating trend, labeled with the short month
// name and carrying the month's mean rating rounded to two decimals.
type TrendPoint struct {
	Month   string  `json:"month"`
	Average float64 `json:"average"`
}

// DistributionSlice is one star bucket's share of all-time submissions,
// as a whole percentage.
type DistributionSlice struct {
	Segment string `json:"segment"`
	Value   int    `json:"value"`
	Label   string `json:"label"`
}

// RecentRating is one entry of the chronological recent-ratings series.
type RecentRating struct {
	Rating     float64   `json:"rating"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// FeedbackEntry is one row of the recent-feedback table.
type FeedbackEntry struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"receivedAt"`
	Feedback   string    `json:"feedback"`
	Rating     float64   `json:"rating"`
}

// DashboardData is the full dashboard payload for one business.
type DashboardData struct {
	Metrics            []Metric            `json:"metrics"`
	RatingTrend        []TrendPoint        `json:"ratingTrend"`
	RatingDistribution []DistributionSlice `json:"ratingDistribution"`
	RecentRatings      []RecentRating      `json:"recentRatings"`
	RecentFeedback     []FeedbackEntry     `json:"recentFeedback"`
	TotalFeedbackCount int64               `json:"totalFeedbackCount"`
}

// DashboardService projects the pre-aggregated statistics into the dashboard
// payload. All reads are bounded: the daily scan pages backward only to the
// window floor and the raw-record fetch is a single page.
type DashboardService struct {
	// DB is the database handle used for all dashboard reads.
	DB *gorm.DB

	// RecentLimit caps the recent-record page; <= 0 uses DefaultRecentLimit.
	RecentLimit int

	// ScanPageSize is the daily-rollup page size; <= 0 uses the default.
	ScanPageSize int

	// Now overrides the clock, for tests. Nil means time.Now.
	Now func() time.Time
}

// periodTotals accumulates one KPI window of daily rollups.
type periodTotals struct {
	count         int64
	sumRating     float64
	fiveStarCount int64
}

func (p periodTotals) avg() float64 {
	if p.count == 0 {
		return 0
	}
	return p.sumRating / float64(p.count)
}

func (p periodTotals) fiveStarShare() float64 {
	if p.count == 0 {
		return 0
	}
	return float64(p.fiveStarCount) / float64(p.count)
}

// monthTotals accumulates one calendar month of daily rollups for the trend.
type monthTotals struct {
	count     int64
	sumRating float64
}

// Compute assembles the dashboard payload for businessID.
//
// A business with zero feedback yields empty metrics, an all-zero
// distribution, six zero-average trend months, empty recent lists, and a
// zero total; this is the documented empty state, not an error. Store
// failures are propagated so callers can degrade (e.g., serve a cached
// payload) instead of rendering partial numbers.
func (s *DashboardService) Compute(ctx context.Context, businessID string) (*DashboardData, error) {
	now := s.now()
	currentStart := now.Add(-periodDays * 24 * time.Hour)
	previousStart := currentStart.Add(-periodDays * 24 * time.Hour)

	monthStarts := trailingMonthStarts(now)
	// Scan floor: everything older than both KPI windows and the trend span
	// is irrelevant, so pagination stops there.
	floor := previousStart
	if monthStarts[0].Before(floor) {
		floor = monthStarts[0]
	}

	summary, err := repo.GetSummary(ctx, s.DB, businessID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	current, previous, months, err := s.scanDailyWindow(ctx, businessID, currentStart, previousStart, floor)
	if err != nil {
		return nil, err
	}

	recent, err := repo.ListRecentFeedback(ctx, s.DB, businessID, s.recentLimit())
	if err != nil {
		return nil, err
	}

	data := &DashboardData{
		Metrics:            buildMetrics(summary, current, previous),
		RatingTrend:        buildTrend(monthStarts, months),
		RatingDistribution: buildDistribution(summary),
		RecentRatings:      make([]RecentRating, 0, len(recent)),
		RecentFeedback:     make([]FeedbackEntry, 0, len(recent)),
	}
	if summary != nil {
		data.TotalFeedbackCount = summary.TotalCount
	}

	// recentFeedback keeps the fetched newest-first order; recentRatings is
	// the same page reversed to chronological order for the area chart.
	for i := len(recent) - 1; i >= 0; i-- {
		data.RecentRatings = append(data.RecentRatings, RecentRating{
			Rating:     recent[i].Rating,
			ReceivedAt: recent[i].CreatedAt,
		})
	}
	for _, f := range recent {
		data.RecentFeedback = append(data.RecentFeedback, FeedbackEntry{
			ID:         f.ID,
			ReceivedAt: f.CreatedAt,
			Feedback:   f.Message,
			Rating:     f.Rating,
		})
	}

	return data, nil
}

// scanDailyWindow pages backward through the daily rollups (newest first)
// and accumulates the two KPI windows plus the per-month trend buckets.
// It stops as soon as a page's oldest entry predates the floor.
func (s *DashboardService) scanDailyWindow(ctx context.Context, businessID string, currentStart, previousStart, floor time.Time) (current, previous periodTotals, months map[string]*monthTotals, err error) {
	months = make(map[string]*monthTotals, trendMonths)
	pageSize := s.ScanPageSize
	if pageSize <= 0 {
		pageSize = defaultScanPageSize
	}

	for offset := 0; ; offset += pageSize {
		page, err := repo.ListDailyAggregatesPage(ctx, s.DB, businessID, offset, pageSize)
		if err != nil {
			return periodTotals{}, periodTotals{}, nil, err
		}
		if len(page) == 0 {
			break
		}

		var oldest time.Time
		for _, row := range page {
			day, err := time.ParseInLocation("2006-01-02", row.Date, time.UTC)
			if err != nil {
				// A malformed date key cannot be attributed to any window;
				// skip the row rather than failing the whole dashboard.
				continue
			}
			oldest = day

			switch {
			case !day.Before(currentStart):
				current.count += row.Count
				current.sumRating += row.SumRating
				current.fiveStarCount += row.FiveStarCount
			case !day.Before(previousStart):
				previous.count += row.Count
				previous.sumRating += row.SumRating
				previous.fiveStarCount += row.FiveStarCount
			}

			monthKey := row.Date[:7]
			if m, ok := months[monthKey]; ok {
				m.count += row.Count
				m.sumRating += row.SumRating
			} else if !day.Before(floor) {
				months[monthKey] = &monthTotals{count: row.Count, sumRating: row.SumRating}
			}
		}

		if len(page) < pageSize || oldest.Before(floor) {
			break
		}
	}
	return current, previous, months, nil
}

// buildMetrics derives the headline KPI cards. An empty list is the
// documented state for a business with zero feedback.
func buildMetrics(summary *domain.SummaryAggregate, current, previous periodTotals) []Metric {
	metrics := []Metric{}
	if summary == nil || summary.TotalCount == 0 {
		return metrics
	}

	bothPeriods := current.count > 0 && previous.count > 0

	// Average rating: current-period mean, falling back to the all-time mean
	// when the current window is empty.
	avg := summary.AvgRating()
	if current.count > 0 {
		avg = current.avg()
	}
	avgDiff := 0
	if bothPeriods && previous.avg() != 0 {
		avgDiff = utils.PercentChange(current.avg(), previous.avg())
	}
	metrics = append(metrics, Metric{
		Title: "Average rating",
		Icon:  "rating",
		Value: fmt.Sprintf("%.2f", avg),
		Diff:  avgDiff,
	})

	// 5-star share: same fallback rule; the previous share can legitimately
	// be zero, which reports as 0% change rather than a divide-by-zero blowup.
	share := float64(summary.FiveStarCount) / float64(summary.TotalCount)
	if current.count > 0 {
		share = current.fiveStarShare()
	}
	shareDiff := 0
	if bothPeriods && previous.fiveStarShare() != 0 {
		shareDiff = utils.PercentChange(current.fiveStarShare(), previous.fiveStarShare())
	}
	metrics = append(metrics, Metric{
		Title: "5-star share",
		Icon:  "promoters",
		Value: fmt.Sprintf("%d%%", utils.RoundPercent(share)),
		Diff:  shareDiff,
	})

	// Feedback volume: cold-start growth (previous window empty, current
	// non-empty) is still meaningful and reports as +100%.
	volume := summary.TotalCount
	if current.count > 0 {
		volume = current.count
	}
	volumeDiff := 0
	switch {
	case bothPeriods:
		volumeDiff = utils.PercentChange(float64(current.count), float64(previous.count))
	case current.count > 0 && previous.count == 0:
		volumeDiff = 100
	}
	metrics = append(metrics, Metric{
		Title: "Feedback volume",
		Icon:  "volume",
		Value: strconv.FormatInt(volume, 10),
		Diff:  volumeDiff,
	})

	return metrics
}

// buildTrend renders the trailing months oldest to newest, zero-averaged
// when a month had no activity.
func buildTrend(monthStarts []time.Time, months map[string]*monthTotals) []TrendPoint {
	trend := make([]TrendPoint, 0, len(monthStarts))
	for _, start := range monthStarts {
		point := TrendPoint{Month: start.Month().String()[:3]}
		if m, ok := months[start.Format("2006-01")]; ok && m.count > 0 {
			point.Average = utils.Round2(m.sumRating / float64(m.count))
		}
		trend = append(trend, point)
	}
	return trend
}

// buildDistribution converts the summary histogram into whole-percentage
// shares for stars 1..5, all zero when the business has no feedback.
func buildDistribution(summary *domain.SummaryAggregate) []DistributionSlice {
	var buckets [6]int64
	var total int64
	if summary != nil {
		buckets = summary.Buckets()
		total = summary.TotalCount
	}
	out := make([]DistributionSlice, 0, 5)
	for star := 1; star <= 5; star++ {
		value := 0
		if total > 0 {
			value = utils.RoundPercent(float64(buckets[star]) / float64(total))
		}
		label := fmt.Sprintf("%d Stars", star)
		if star == 1 {
			label = "1 Star"
		}
		out = append(out, DistributionSlice{
			Segment: strconv.Itoa(star),
			Value:   value,
			Label:   label,
		})
	}
	return out
}

// trailingMonthStarts returns the first day (UTC) of each of the trailing
// trend months, oldest first, ending with the current partial month.
func trailingMonthStarts(now time.Time) []time.Time {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		out = append(out, first.AddDate(0, -i, 0))
	}
	return out
}

func (s *DashboardService) recentLimit() int {
	if s.RecentLimit > 0 {
		return s.RecentLimit
	}
	return DefaultRecentLimit
}

func (s *DashboardService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
