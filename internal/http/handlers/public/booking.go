package public

import (
	"strconv"
	"time"

	handlershared "github.com/nexpetcare/nexpetcare/internal/http/handlers/shared"
	"github.com/nexpetcare/nexpetcare/internal/http/response"
	"github.com/nexpetcare/nexpetcare/internal/repository"
	"github.com/nexpetcare/nexpetcare/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateBookingRequest creates a booking for the logged-in customer
type CreateBookingRequest struct {
	ServiceID   uint   `json:"service_id" binding:"required"`
	PetID       uint   `json:"pet_id" binding:"required"`
	BookingDate string `json:"booking_date" binding:"required"`
	CouponCode  string `json:"coupon_code"`
	Notes       string `json:"notes"`
}

// CreateBooking creates a booking under the customer's session
func (h *Handler) CreateBooking(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	tenantID, ok := getCustomerTenantID(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	bookingDate, err := time.Parse(time.RFC3339, req.BookingDate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "booking date is invalid", nil)
		return
	}

	booking, err := h.BookingService.CreateBooking(service.CreateBookingInput{
		TenantID:    tenantID,
		CustomerID:  customerID,
		ServiceID:   req.ServiceID,
		PetID:       req.PetID,
		BookingDate: bookingDate,
		CouponCode:  req.CouponCode,
		Notes:       req.Notes,
	})
	if err != nil {
		respondCustomerBookingError(c, err)
		return
	}
	response.Success(c, booking)
}

// ListMyBookings returns the customer's booking history
func (h *Handler) ListMyBookings(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	tenantID, ok := getCustomerTenantID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	bookings, total, err := h.BookingRepo.List(repository.BookingListFilter{
		Page:       page,
		PageSize:   pageSize,
		TenantID:   tenantID,
		CustomerID: customerID,
		Status:     c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "bookings could not be loaded", err)
		return
	}

	response.SuccessWithPage(c, bookings, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetMyBooking returns one booking owned by the customer
func (h *Handler) GetMyBooking(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	tenantID, ok := getCustomerTenantID(c)
	if !ok {
		return
	}

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "booking id is invalid", nil)
		return
	}

	booking, err := h.BookingRepo.GetByTenantAndID(tenantID, uint(bookingID))
	if err != nil {
		respondError(c, response.CodeInternal, "booking could not be loaded", err)
		return
	}
	if booking == nil || booking.CustomerID != customerID {
		respondError(c, response.CodeNotFound, "booking not found", nil)
		return
	}
	response.Success(c, booking)
}
