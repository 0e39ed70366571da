package service

import (
	"strings"

	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/logger"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/queue"
)

var allowedTransitions = map[string]map[string]bool{
	constants.BookingStatusPending: {
		constants.BookingStatusConfirmed: true,
		constants.BookingStatusCanceled:  true,
	},
	constants.BookingStatusConfirmed: {
		constants.BookingStatusCompleted: true,
		constants.BookingStatusCanceled:  true,
	},
}

// CanTransition reports whether a booking may move between two statuses
func CanTransition(from, to string) bool {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	return allowedTransitions[from][to]
}

// TransitionStatus moves a booking to a new status and queues the
// customer notification. Terminal statuses cannot move again.
func (s *BookingService) TransitionStatus(tenantID, bookingID uint, newStatus string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByTenantAndID(tenantID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	newStatus = strings.ToLower(strings.TrimSpace(newStatus))
	if !CanTransition(booking.Status, newStatus) {
		return nil, ErrInvalidStatusChange
	}

	if err := s.bookingRepo.UpdateStatus(booking.ID, newStatus); err != nil {
		return nil, err
	}
	booking.Status = newStatus

	s.enqueueStatusEmail(booking, newStatus)
	return booking, nil
}

func (s *BookingService) enqueueStatusEmail(booking *models.Booking, status string) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueBookingStatusEmail(queue.BookingStatusEmailPayload{
		BookingID: booking.ID,
		Status:    status,
	}); err != nil {
		logger.Errorw("booking_enqueue_status_email_failed",
			"booking_id", booking.ID,
			"booking_no", booking.BookingNo,
			"status", status,
			"error", err,
		)
	}
}
