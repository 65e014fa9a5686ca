package handlers

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/syncback/feedback-backend/internal/http/middleware"
	"github.com/syncback/feedback-backend/internal/services"
)

// ---- stubs to satisfy handlers.New() dependencies ----

type stubSubmitFBSvc struct {
	fn func(ctx context.Context, sub services.Submission) (string, error)
}

func (s stubSubmitFBSvc) Submit(ctx context.Context, sub services.Submission) (string, error) {
	if s.fn != nil {
		return s.fn(ctx, sub)
	}
	return "fb-1", nil
}

type stubSubmitDashSvc struct{}

func (stubSubmitDashSvc) Compute(context.Context, string) (*services.DashboardData, error) {
	return nil, nil
}

type stubSubmitBizSvc struct{}

func (stubSubmitBizSvc) Save(context.Context, string, string, string, string, string) (*services.BusinessProfile, error) {
	return nil, nil
}
func (stubSubmitBizSvc) GetForOwner(context.Context, string) (*services.BusinessProfile, error) {
	return nil, nil
}

func newSubmitRouter(h *Handlers, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/f/:slug/feedback", append(mw, h.SubmitFeedback)...)
	return r
}

// ---- tests ----

func TestSubmitFeedback_BindingError(t *testing.T) {
	fb := stubSubmitFBSvc{fn: func(ctx context.Context, sub services.Submission) (string, error) {
		t.Fatalf("service should not be called on binding error")
		return "", nil
	}}
	h := New(fb, stubSubmitDashSvc{}, stubSubmitBizSvc{}, "")
	r := newSubmitRouter(h)

	// Missing rating → binding error.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/f/acme/feedback", bytes.NewBufferString(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json: %v", err)
	}
	if er.Code != ErrCodeBadRequest || er.Message == "" {
		t.Fatalf("error envelope unexpected: %+v", er)
	}
}

func TestSubmitFeedback_ErrorMappings(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid_rating", services.ErrInvalidRating, http.StatusBadRequest, ErrCodeBadRequest},
		{"empty_message", services.ErrEmptyMessage, http.StatusBadRequest, ErrCodeBadRequest},
		{"invalid_source", services.ErrInvalidSource, http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown_business", services.ErrBusinessNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"internal", context.DeadlineExceeded, http.StatusInternalServerError, ErrCodeSubmitFailed},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			fb := stubSubmitFBSvc{fn: func(ctx context.Context, sub services.Submission) (string, error) {
				if sub.Slug != "acme-cafe" {
					t.Fatalf("slug = %q, want acme-cafe", sub.Slug)
				}
				return "", tc.err
			}}
			h := New(fb, stubSubmitDashSvc{}, stubSubmitBizSvc{}, "")
			r := newSubmitRouter(h)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/f/acme-cafe/feedback",
				bytes.NewBufferString(`{"rating":4.5,"message":"great"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("status=%d, want %d. body=%s", w.Code, tc.wantStatus, w.Body.String())
			}
			var er ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
				t.Fatalf("json: %v", err)
			}
			if er.Code != tc.wantCode || er.Message == "" {
				t.Fatalf("error envelope unexpected: %+v", er)
			}
		})
	}
}

func TestSubmitFeedback_Success201(t *testing.T) {
	var got services.Submission
	fb := stubSubmitFBSvc{fn: func(ctx context.Context, sub services.Submission) (string, error) {
		got = sub
		return "fb-abc", nil
	}}
	h := New(fb, stubSubmitDashSvc{}, stubSubmitBizSvc{}, "")
	r := newSubmitRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/f/acme/feedback",
		bytes.NewBufferString(`{"rating":4.5,"message":"great coffee","source":"kiosk"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d. body=%s", w.Code, w.Body.String())
	}
	var resp SubmitFeedbackResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.FeedbackID != "fb-abc" {
		t.Fatalf("feedback_id = %q, want fb-abc", resp.FeedbackID)
	}
	if got.Slug != "acme" || got.Rating != 4.5 || got.Message != "great coffee" || got.Source != "kiosk" {
		t.Fatalf("submission mismatch: %+v", got)
	}
	if got.IPHash != nil {
		t.Fatalf("IP hashing is disabled without a salt")
	}
	if got.IdempotencyKey != "" {
		t.Fatalf("no Idempotency-Key header was sent")
	}
}

func TestSubmitFeedback_RejectsUnknownSource(t *testing.T) {
	fb := stubSubmitFBSvc{fn: func(ctx context.Context, sub services.Submission) (string, error) {
		t.Fatalf("oneof binding should reject before the service")
		return "", nil
	}}
	h := New(fb, stubSubmitDashSvc{}, stubSubmitBizSvc{}, "")
	r := newSubmitRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/f/acme/feedback",
		bytes.NewBufferString(`{"rating":3,"message":"ok","source":"carrier-pigeon"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSubmitFeedback_IdempotencyKeyPassthrough(t *testing.T) {
	var got services.Submission
	fb := stubSubmitFBSvc{fn: func(ctx context.Context, sub services.Submission) (string, error) {
		got = sub
		return "fb-1", nil
	}}
	h := New(fb, stubSubmitDashSvc{}, stubSubmitBizSvc{}, "")
	r := newSubmitRouter(h, middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/f/acme/feedback",
		bytes.NewBufferString(`{"rating":5,"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderIdempotencyKey, "retry-key-42")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d. body=%s", w.Code, w.Body.String())
	}
	if got.IdempotencyKey != "retry-key-42" {
		t.Fatalf("idempotency key = %q, want retry-key-42", got.IdempotencyKey)
	}
}

func TestSubmitFeedback_HashesClientIP(t *testing.T) {
	var got services.Submission
	fb := stubSubmitFBSvc{fn: func(ctx context.Context, sub services.Submission) (string, error) {
		got = sub
		return "fb-1", nil
	}}
	h := New(fb, stubSubmitDashSvc{}, stubSubmitBizSvc{}, "pepper")
	r := newSubmitRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/f/acme/feedback",
		bytes.NewBufferString(`{"rating":5,"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if got.IPHash == nil {
		t.Fatalf("expected a salted IP hash")
	}
	// httptest.NewRequest fixes RemoteAddr to 192.0.2.1.
	sum := sha256.Sum256([]byte("pepper" + "192.0.2.1"))
	if *got.IPHash != hex.EncodeToString(sum[:]) {
		t.Fatalf("hash mismatch: %s", *got.IPHash)
	}
	if len(*got.IPHash) != 64 {
		t.Fatalf("expected hex SHA-256, got %q", *got.IPHash)
	}
}
