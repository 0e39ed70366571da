package public

import (
	"strconv"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/http/response"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/service"

	"github.com/gin-gonic/gin"
)

// StorefrontView is the public projection of a store.
type StorefrontView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func storefrontView(tenant *models.Tenant) StorefrontView {
	return StorefrontView{
		ID:   tenant.ID,
		Name: tenant.Name,
		Slug: tenant.Slug,
	}
}

// resolveStore loads the active store for the :slug route param and writes
// the error response itself when resolution fails.
func (h *Handler) resolveStore(c *gin.Context) (*models.Tenant, bool) {
	tenant, err := h.TenantService.ResolveStorefront(c.Param("slug"))
	if err != nil {
		respondStorefrontError(c, err)
		return nil, false
	}
	return tenant, true
}

// GetStorefront returns the public store profile
func (h *Handler) GetStorefront(c *gin.Context) {
	tenant, ok := h.resolveStore(c)
	if !ok {
		return
	}
	response.Success(c, storefrontView(tenant))
}

// ListStoreServices returns the active services of a store
func (h *Handler) ListStoreServices(c *gin.Context) {
	tenant, ok := h.resolveStore(c)
	if !ok {
		return
	}

	services, err := h.CatalogService.ListActive(tenant.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "services could not be loaded", err)
		return
	}
	response.Success(c, services)
}

// GetStoreService returns one active service of a store
func (h *Handler) GetStoreService(c *gin.Context) {
	tenant, ok := h.resolveStore(c)
	if !ok {
		return
	}

	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "service id is invalid", nil)
		return
	}

	svc, err := h.ServiceRepo.GetByTenantAndID(tenant.ID, uint(serviceID))
	if err != nil {
		respondError(c, response.CodeInternal, "service could not be loaded", err)
		return
	}
	if svc == nil || !svc.IsActive {
		respondError(c, response.CodeNotFound, "service not found", nil)
		return
	}
	response.Success(c, svc)
}

// QuoteBookingRequest previews the price of a booking
type QuoteBookingRequest struct {
	ServiceID  uint   `json:"service_id" binding:"required"`
	CouponCode string `json:"coupon_code"`
}

// QuoteBooking returns the discounted price without creating a booking
func (h *Handler) QuoteBooking(c *gin.Context) {
	tenant, ok := h.resolveStore(c)
	if !ok {
		return
	}

	var req QuoteBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	quote, err := h.BookingService.QuoteBooking(tenant.ID, req.ServiceID, req.CouponCode)
	if err != nil {
		respondQuoteError(c, err)
		return
	}
	response.Success(c, quote)
}

// GuestPetRequest pet details on a guest booking
type GuestPetRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type"`
	Breed    string `json:"breed"`
	AgeYears int    `json:"age_years"`
	Gender   string `json:"gender"`
}

// CreateGuestBookingRequest creates a booking from the storefront
type CreateGuestBookingRequest struct {
	Email       string          `json:"email" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Phone       string          `json:"phone"`
	ServiceID   uint            `json:"service_id" binding:"required"`
	Pet         GuestPetRequest `json:"pet" binding:"required"`
	BookingDate string          `json:"booking_date" binding:"required"`
	CouponCode  string          `json:"coupon_code"`
	Notes       string          `json:"notes"`
}

// CreateGuestBooking creates a booking for a storefront visitor, provisioning
// the customer record when the email is new to the store
func (h *Handler) CreateGuestBooking(c *gin.Context) {
	tenant, ok := h.resolveStore(c)
	if !ok {
		return
	}

	var req CreateGuestBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	bookingDate, err := time.Parse(time.RFC3339, req.BookingDate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "booking date is invalid", nil)
		return
	}

	booking, err := h.BookingService.CreateGuestBooking(service.CreateGuestBookingInput{
		TenantID:  tenant.ID,
		Email:     req.Email,
		Name:      req.Name,
		Phone:     req.Phone,
		ServiceID: req.ServiceID,
		Pet: service.GuestPetInput{
			Name:     req.Pet.Name,
			Type:     req.Pet.Type,
			Breed:    req.Pet.Breed,
			AgeYears: req.Pet.AgeYears,
			Gender:   req.Pet.Gender,
		},
		BookingDate: bookingDate,
		CouponCode:  req.CouponCode,
		Notes:       req.Notes,
	})
	if err != nil {
		respondGuestBookingError(c, err)
		return
	}
	response.Success(c, booking)
}
