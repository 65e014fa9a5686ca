// Feedback HTTP handlers.
//
// This file exposes the public REST endpoint guests reach through a
// business's QR code or link:
//   - POST /f/{slug}/feedback  (submit feedback)
//
// The endpoint is unauthenticated by design; abuse control is the rate
// limiter's job. The submitter IP is recorded only as a salted hash.
package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/syncback/feedback-backend/internal/http/middleware"
	"github.com/syncback/feedback-backend/internal/services"
)

// SubmitFeedbackRequest is the JSON payload for submitting feedback.
//
// Rating must be a star value between 0.5 and 5.0 in half-star steps;
// Message must be non-empty. Source is optional and defaults to "qr".
type SubmitFeedbackRequest struct {
	// Rating is the star value in [0.5, 5.0], half-star steps.
	Rating float64 `json:"rating" binding:"required" example:"4.5"`
	// Message is the free-text feedback.
	Message string `json:"message" binding:"required" example:"Great service!"`
	// Source is the capture channel: qr, link, or kiosk.
	Source string `json:"source,omitempty" binding:"omitempty,oneof=qr link kiosk" example:"qr"`
}

// SubmitFeedbackResponse carries the id of the newly created feedback record.
type SubmitFeedbackResponse struct {
	FeedbackID string `json:"feedback_id" example:"fa4dfbe0-c3bf-47bd-b32f-d7de221cf43b"`
}

// SubmitFeedback godoc
// @ID          submitFeedback
// @Summary     Submit feedback for a business
// @Description Records one guest feedback submission against the business identified by slug and folds it into the pre-aggregated statistics.
// @Tags        Feedback
// @Accept      json
// @Produce     json
//
// @Param       slug             path    string  true  "Business slug"               example(acme-coffee)
// @Param       Idempotency-Key  header  string  false "Dedup key for safe retries"  example(c0ffee-1234)
// @Param       body             body    handlers.SubmitFeedbackRequest true "Feedback payload"
//
// @Success     201  {object} handlers.SubmitFeedbackResponse
// @Failure     400  {object} handlers.ErrorResponse "Invalid rating or message"
// @Failure     404  {object} handlers.ErrorResponse "Unknown business"
// @Failure     500  {object} handlers.ErrorResponse "Internal server error"
// @Router      /f/{slug}/feedback [post]
func (h *Handlers) SubmitFeedback(c *gin.Context) {
	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "rating and message are required")
		return
	}

	sub := services.Submission{
		Slug:    c.Param("slug"),
		Rating:  req.Rating,
		Message: req.Message,
		Source:  req.Source,
		IPHash:  h.hashClientIP(c),
	}
	if key, ok := middleware.GetIdempotencyKey(c); ok {
		sub.IdempotencyKey = key
	}

	id, err := h.fbSvc.Submit(c.Request.Context(), sub)
	if err != nil {
		switch err {
		case services.ErrInvalidRating:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "select a rating between 0.5 and 5 in half-star steps")
		case services.ErrEmptyMessage:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "feedback message cannot be empty")
		case services.ErrInvalidSource:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "source must be qr, link, or kiosk")
		case services.ErrBusinessNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "business not found")
		default:
			// Infrastructure failure: the whole submission rolled back, so a
			// retry is safe. Keep the message generic.
			fail(c, http.StatusInternalServerError, ErrCodeSubmitFailed, "could not save feedback, please try again")
		}
		return
	}

	ok(c, http.StatusCreated, SubmitFeedbackResponse{FeedbackID: id})
}

// hashClientIP returns the salted SHA-256 of the client IP, or nil when
// hashing is disabled or no IP is available. The raw address is never stored.
func (h *Handlers) hashClientIP(c *gin.Context) *string {
	if h.ipHashSalt == "" {
		return nil
	}
	ip := c.ClientIP()
	if ip == "" {
		return nil
	}
	sum := sha256.Sum256([]byte(h.ipHashSalt + ip))
	out := hex.EncodeToString(sum[:])
	return &out
}
