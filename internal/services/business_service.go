// Package services – BusinessService
//
// This file implements the thin business-provisioning use-case around the
// feedback collection point: upserting the owner's business profile,
// keeping its public slug unique (suffixing -1, -2, ... on collisions), and
// deriving the public feedback URL the QR code points at. QR image rendering
// and email delivery are external concerns and do not live here.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/syncback/feedback-backend/internal/domain"
	"github.com/syncback/feedback-backend/internal/repo"
)

// BusinessProfile is the service-level view of a business, including the
// derived public feedback URL.
type BusinessProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Slug        string `json:"slug"`
	FeedbackURL string `json:"feedback_url"`
}

// BusinessService manages the business profile that owns a feedback
// collection point. One owner has at most one business.
type BusinessService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// AppURL is the public base URL feedback links are derived from,
	// e.g. "https://app.example.com".
	AppURL string
}

// Save upserts the business owned by ownerUserID. The requested slug (or
// the name, when no slug is given) is normalized to a URL-safe handle; on
// collision with another business the handle is suffixed -1, -2, ... until
// unique, mirroring the settings form's provisioning behavior.
func (s *BusinessService) Save(ctx context.Context, ownerUserID, name, email, phone, slug string) (*BusinessProfile, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if name == "" || email == "" {
		return nil, ErrInvalidProfile
	}

	base := Slugify(slug)
	if base == "" {
		base = Slugify(name)
	}
	if base == "" {
		base = "business"
	}

	var out *BusinessProfile
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := repo.GetBusinessByOwner(ctx, tx, ownerUserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		excludeID := ""
		if existing != nil {
			excludeID = existing.ID
		}
		unique, err := s.uniqueSlug(ctx, tx, base, excludeID)
		if err != nil {
			return err
		}

		var b *domain.Business
		if existing != nil {
			if err := repo.UpdateBusiness(ctx, tx, existing.ID, name, email, phone, unique); err != nil {
				return err
			}
			b, err = repo.GetBusiness(ctx, tx, existing.ID)
			if err != nil {
				return err
			}
		} else {
			b, err = repo.CreateBusiness(ctx, tx, ownerUserID, name, email, phone, unique)
			if err != nil {
				return err
			}
		}
		out = s.profile(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetForOwner returns the business owned by ownerUserID, or
// ErrBusinessNotFound when the owner has not provisioned one.
func (s *BusinessService) GetForOwner(ctx context.Context, ownerUserID string) (*BusinessProfile, error) {
	b, err := repo.GetBusinessByOwner(ctx, s.DB, ownerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return s.profile(b), nil
}

// uniqueSlug probes base, base-1, base-2, ... until an unclaimed handle is
// found. The business identified by excludeID may keep its own slug.
func (s *BusinessService) uniqueSlug(ctx context.Context, tx *gorm.DB, base, excludeID string) (string, error) {
	slug := base
	for i := 1; ; i++ {
		taken, err := repo.SlugTaken(ctx, tx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// profile maps a persisted business onto its service-level view.
func (s *BusinessService) profile(b *domain.Business) *BusinessProfile {
	return &BusinessProfile{
		ID:          b.ID,
		Name:        b.Name,
		Email:       b.Email,
		Phone:       b.Phone,
		Slug:        b.Slug,
		FeedbackURL: fmt.Sprintf("%s/%s/feedback", strings.TrimRight(s.AppURL, "/"), b.Slug),
	}
}

// Slugify normalizes free text into a URL-safe handle: accents are
// decomposed and stripped, everything non-alphanumeric collapses to single
// hyphens, and the result is lowercased.
func Slugify(s string) string {
	// Strip combining marks so "Café" becomes "cafe", not "caf".
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugSeparatorRE.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// slugSeparatorRE collapses runs of non-alphanumeric characters to a hyphen.
var slugSeparatorRE = regexp.MustCompile(`[^a-z0-9]+`)
