package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/syncback/feedback-backend/internal/domain"
)

func newFeedbackRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("feedback_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&domain.Business{}, &domain.Feedback{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedFeedbackBusiness(t *testing.T, db *gorm.DB, owner, slug string) *domain.Business {
	t.Helper()
	b, err := CreateBusiness(context.Background(), db, owner, "Biz "+slug, slug+"@example.com", "", slug)
	if err != nil {
		t.Fatalf("seed business: %v", err)
	}
	return b
}

func TestCreateFeedback_SetsDefaultsAndTimestamp(t *testing.T) {
	db := newFeedbackRepoDB(t)
	ctx := context.Background()
	biz := seedFeedbackBusiness(t, db, "u1", "acme")

	at := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	hash := "deadbeef"
	f, err := CreateFeedback(ctx, db, biz.ID, 4.5, "Great coffee", domain.SourceQR, &hash, at)
	if err != nil {
		t.Fatalf("CreateFeedback: %v", err)
	}
	if f.ID == "" || f.BusinessID != biz.ID || f.Rating != 4.5 {
		t.Fatalf("unexpected Feedback fields: %+v", f)
	}
	if f.Status != domain.StatusNew {
		t.Fatalf("new feedback must start as %q, got %q", domain.StatusNew, f.Status)
	}
	if !f.CreatedAt.Equal(at) {
		t.Fatalf("CreatedAt = %v, want caller-supplied %v", f.CreatedAt, at)
	}
	if f.IPHash == nil || *f.IPHash != "deadbeef" {
		t.Fatalf("IPHash not persisted: %v", f.IPHash)
	}
}

func TestListRecentFeedback_NewestFirstBounded(t *testing.T) {
	db := newFeedbackRepoDB(t)
	ctx := context.Background()
	biz := seedFeedbackBusiness(t, db, "u1", "acme")
	other := seedFeedbackBusiness(t, db, "u2", "other")

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		if _, err := CreateFeedback(ctx, db, biz.ID, 4.0, fmt.Sprintf("msg-%d", i), domain.SourceQR, nil, at); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
	if _, err := CreateFeedback(ctx, db, other.ID, 1.0, "elsewhere", domain.SourceQR, nil, base.Add(48*time.Hour)); err != nil {
		t.Fatalf("seed other: %v", err)
	}

	page, err := ListRecentFeedback(ctx, db, biz.ID, 3)
	if err != nil {
		t.Fatalf("ListRecentFeedback: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("expected bounded page of 3, got %d", len(page))
	}
	want := []string{"msg-4", "msg-3", "msg-2"}
	for i, f := range page {
		if f.Message != want[i] {
			t.Fatalf("page[%d] = %q, want %q", i, f.Message, want[i])
		}
		if f.BusinessID != biz.ID {
			t.Fatalf("foreign business row leaked into page: %+v", f)
		}
	}

	// limit <= 0 returns the full history for the business.
	all, err := ListRecentFeedback(ctx, db, biz.ID, 0)
	if err != nil || len(all) != 5 {
		t.Fatalf("unbounded list: n=%d err=%v", len(all), err)
	}
}

func TestCountFeedback(t *testing.T) {
	db := newFeedbackRepoDB(t)
	ctx := context.Background()
	biz := seedFeedbackBusiness(t, db, "u1", "acme")

	n, err := CountFeedback(ctx, db, biz.ID)
	if err != nil || n != 0 {
		t.Fatalf("empty count: n=%d err=%v", n, err)
	}
	at := time.Now().UTC()
	for i := 0; i < 3; i++ {
		if _, err := CreateFeedback(ctx, db, biz.ID, 3.5, "m", domain.SourceLink, nil, at); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	n, err = CountFeedback(ctx, db, biz.ID)
	if err != nil || n != 3 {
		t.Fatalf("count after seed: n=%d err=%v", n, err)
	}
}
