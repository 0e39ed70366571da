package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/http/response"
	"github.com/nexpetcare/nexpetcare/internal/repository"
	"github.com/nexpetcare/nexpetcare/internal/service"

	"github.com/gin-gonic/gin"
)

// ListBookings returns the store's bookings with optional filters
func (h *Handler) ListBookings(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.BookingListFilter{
		Page:     page,
		PageSize: pageSize,
		TenantID: tenantID,
		Status:   c.Query("status"),
	}
	if customerID, err := strconv.ParseUint(c.Query("customer_id"), 10, 64); err == nil && customerID > 0 {
		filter.CustomerID = uint(customerID)
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		filter.BookingFrom = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		filter.BookingTo = &to
	}

	bookings, total, err := h.BookingRepo.List(filter)
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

// GetBooking returns one booking of the store
func (h *Handler) GetBooking(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
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
	if booking == nil {
		respondError(c, response.CodeNotFound, "booking not found", nil)
		return
	}
	response.Success(c, booking)
}

// UpdateBookingStatusRequest moves a booking through its lifecycle
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateBookingStatus applies a status transition and queues the matching
// customer notification
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "booking id is invalid", nil)
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	booking, err := h.BookingService.TransitionStatus(tenantID, uint(bookingID), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			respondError(c, response.CodeNotFound, "booking not found", nil)
		case errors.Is(err, service.ErrInvalidStatusChange):
			respondError(c, response.CodeBadRequest, "status transition not allowed", nil)
		default:
			respondError(c, response.CodeInternal, "booking status could not be updated", err)
		}
		return
	}
	response.Success(c, booking)
}
