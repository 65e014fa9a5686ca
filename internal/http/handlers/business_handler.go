// Business HTTP handlers.
//
// This file exposes the settings endpoints for the business that owns the
// feedback collection point:
//   - PUT /business  (upsert the current user's business profile)
//   - GET /business  (fetch the current user's business profile)
//
// The profile includes the derived public feedback URL; rendering it as a
// QR image is a client concern.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/syncback/feedback-backend/internal/services"
)

// SaveBusinessRequest is the JSON payload for provisioning or updating the
// current user's business.
type SaveBusinessRequest struct {
	// Name is the business display name.
	Name string `json:"name" binding:"required,min=1,max=255" example:"Acme Coffee"`
	// Email is the business contact address.
	Email string `json:"email" binding:"required,email" example:"hello@acme.coffee"`
	// Phone is an optional contact number.
	Phone string `json:"phone" binding:"omitempty,max=64" example:"+44 20 7946 0000"`
	// Slug optionally requests a specific public handle; collisions are
	// resolved with numeric suffixes. Defaults to a slug of the name.
	Slug string `json:"slug" binding:"omitempty,max=128" example:"acme-coffee"`
}

// SaveBusiness godoc
// @ID          saveBusiness
// @Summary     Create or update the current user's business
// @Description Upserts the business profile, keeps the public slug unique, and returns the profile with the derived feedback URL.
// @Tags        Business
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.SaveBusinessRequest true "Business profile payload"
//
// @Success     200  {object} services.BusinessProfile
// @Failure     400  {object} handlers.ErrorResponse "Invalid payload"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /business [put]
func (h *Handlers) SaveBusiness(c *gin.Context) {
	var req SaveBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and a valid email are required")
		return
	}

	profile, err := h.bizSvc.Save(c.Request.Context(), userID(c), req.Name, req.Email, req.Phone, req.Slug)
	if err != nil {
		switch err {
		case services.ErrInvalidProfile:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and a valid email are required")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeSaveFailed, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, profile)
}

// GetBusiness godoc
// @ID          getBusiness
// @Summary     Fetch the current user's business
// @Description Returns the business profile including the derived public feedback URL.
// @Tags        Business
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object} services.BusinessProfile
// @Failure     404  {object} handlers.ErrorResponse "No business provisioned yet"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /business [get]
func (h *Handlers) GetBusiness(c *gin.Context) {
	profile, err := h.bizSvc.GetForOwner(c.Request.Context(), userID(c))
	if err != nil {
		switch err {
		case services.ErrBusinessNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "business not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, profile)
}
