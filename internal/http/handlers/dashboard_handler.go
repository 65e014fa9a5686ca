// Dashboard HTTP handlers.
//
// This file exposes the authenticated dashboard read:
//   - GET /dashboard  (headline KPIs, trend, distribution, recent lists)
//
// The payload is derived entirely from the pre-aggregated statistics plus
// one bounded page of raw records. A weak ETag computed from the summary
// counters lets the dashboard's auto-refresh poll cheaply with
// If-None-Match.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/syncback/feedback-backend/internal/repo"
	"github.com/syncback/feedback-backend/internal/services"
	"github.com/syncback/feedback-backend/internal/utils"
)

// DashboardResponse wraps the dashboard payload with the business context
// the page header renders. Dashboard is null when the user has not
// provisioned a business yet.
type DashboardResponse struct {
	BusinessName string                  `json:"businessName"`
	Dashboard    *services.DashboardData `json:"dashboardData"`
}

// GetDashboard godoc
// @ID          getDashboard
// @Summary     Dashboard payload for the current user's business
// @Description Returns headline metrics with period-over-period change, the 6-month rating trend, the rating distribution, and bounded recent-feedback lists. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Dashboard
// @Produce     json
//
// @Param       X-User-ID      header  string  false "User ID (demo header)"        example(user123)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"   example(W/\"abc123\")
// @Param       recent         query   int     false "Recent-list size override"    minimum(1) maximum(200)
//
// @Success     200  {object} handlers.DashboardResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /dashboard [get]
func (h *Handlers) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	biz, err := h.bizSvc.GetForOwner(ctx, uid)
	if err != nil {
		if err == services.ErrBusinessNotFound {
			// No business yet: the dashboard renders its onboarding empty
			// state, so this is a successful response with a null payload.
			ok(c, http.StatusOK, DashboardResponse{BusinessName: "Your business"})
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	// ETag pre-check (best effort): the summary counters only grow, so
	// (count, lastFeedbackAt) changes exactly when the payload would.
	if db := h.dashboardDB(); db != nil {
		count, lastAt, err := repo.FeedbackStats(ctx, db, biz.ID)
		if err == nil {
			var ts int64
			if lastAt != nil {
				ts = lastAt.Unix()
			}
			etag := fmt.Sprintf(`W/"dash:%s:%d:%d"`, biz.ID, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	svc := h.dashSvc
	if n := utils.AtoiDefault(c.Query("recent"), 0); n > 0 {
		svc = h.recentBounded(n)
	}

	data, err := svc.Compute(ctx, biz.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	ok(c, http.StatusOK, DashboardResponse{BusinessName: biz.Name, Dashboard: data})
}

// dashboardDB exposes the underlying handle for the ETag fast path when the
// wired service is the concrete DashboardService.
func (h *Handlers) dashboardDB() *gorm.DB {
	if svc, okAssert := h.dashSvc.(*services.DashboardService); okAssert {
		return svc.DB
	}
	return nil
}

// recentBounded returns a projector with the recent-list page shrunk to n,
// clamped to the configured maximum.
func (h *Handlers) recentBounded(n int) DashboardService {
	svc, okAssert := h.dashSvc.(*services.DashboardService)
	if !okAssert {
		return h.dashSvc
	}
	maxRecent := svc.RecentLimit
	if maxRecent <= 0 {
		maxRecent = services.DefaultRecentLimit
	}
	if n > maxRecent {
		n = maxRecent
	}
	bounded := *svc
	bounded.RecentLimit = n
	return &bounded
}
