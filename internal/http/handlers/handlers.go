// Handler wiring and shared service contracts.
//
// Handlers in this package are transport-thin: they validate input, call
// application services, and translate domain/service errors into HTTP
// responses. The endpoints split into an authenticated dashboard surface
// (business profile, dashboard payload) and the public feedback submission
// form reached through a business's QR code or link.
package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/syncback/feedback-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// FeedbackService defines the ingestion operation consumed by the public
// submit endpoint.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type FeedbackService interface {
	// Submit validates and persists one feedback submission and returns the
	// new feedback record's id.
	Submit(ctx context.Context, sub services.Submission) (string, error)
}

// DashboardService defines the metrics projection consumed by the dashboard
// endpoint.
type DashboardService interface {
	// Compute assembles the dashboard payload for a business.
	Compute(ctx context.Context, businessID string) (*services.DashboardData, error)
}

// BusinessService defines the business-profile operations consumed by the
// settings endpoints.
type BusinessService interface {
	// Save upserts the owner's business profile.
	Save(ctx context.Context, ownerUserID, name, email, phone, slug string) (*services.BusinessProfile, error)
	// GetForOwner returns the owner's business, or ErrBusinessNotFound.
	GetForOwner(ctx context.Context, ownerUserID string) (*services.BusinessProfile, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for business provisioning, feedback
// submission, and the dashboard. It depends on abstract service interfaces
// to keep transport concerns separate from business logic.
type Handlers struct {
	fbSvc   FeedbackService
	dashSvc DashboardService
	bizSvc  BusinessService

	// ipHashSalt salts the submitter-IP hash recorded on public
	// submissions; empty disables IP hashing entirely.
	ipHashSalt string
}

// New constructs a Handlers instance bound to the given services.
func New(fbSvc FeedbackService, dashSvc DashboardService, bizSvc BusinessService, ipHashSalt string) *Handlers {
	return &Handlers{fbSvc: fbSvc, dashSvc: dashSvc, bizSvc: bizSvc, ipHashSalt: ipHashSalt}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}
