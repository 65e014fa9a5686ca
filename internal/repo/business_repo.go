// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Business
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a business is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/syncback/feedback-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateBusiness inserts a new Business row owned by ownerUserID.
// The business ID is a randomly generated UUID (string), and CreatedAt is
// set to UTC.
func CreateBusiness(ctx context.Context, db *gorm.DB, ownerUserID, name, email, phone, slug string) (*domain.Business, error) {
	now := time.Now().UTC()
	b := &domain.Business{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        name,
		Email:       email,
		Phone:       phone,
		Slug:        slug,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.WithContext(ctx).Create(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

// GetBusiness fetches a business by its primary key. If the record does not
// exist, it returns ErrNotFound.
func GetBusiness(ctx context.Context, db *gorm.DB, id string) (*domain.Business, error) {
	var b domain.Business
	if err := db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBusinessBySlug fetches a business by its unique slug, the lookup the
// public submit endpoint performs for every submission. Returns ErrNotFound
// when no business carries the slug.
func GetBusinessBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Business, error) {
	var b domain.Business
	if err := db.WithContext(ctx).Where("slug = ?", slug).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBusinessByOwner fetches the single business owned by ownerUserID, or
// ErrNotFound when the user has not provisioned one yet.
func GetBusinessByOwner(ctx context.Context, db *gorm.DB, ownerUserID string) (*domain.Business, error) {
	var b domain.Business
	if err := db.WithContext(ctx).Where("owner_user_id = ?", ownerUserID).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// SlugTaken reports whether slug is already held by a business other than
// excludeID. Pass excludeID == "" for pure existence checks.
func SlugTaken(ctx context.Context, db *gorm.DB, slug, excludeID string) (bool, error) {
	var b domain.Business
	q := db.WithContext(ctx).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateBusiness patches the mutable profile fields of a business and bumps
// UpdatedAt. If no rows are affected (business missing), it returns
// ErrNotFound.
func UpdateBusiness(ctx context.Context, db *gorm.DB, id, name, email, phone, slug string) error {
	res := db.WithContext(ctx).
		Model(&domain.Business{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":       name,
			"email":      email,
			"phone":      phone,
			"slug":       slug,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
