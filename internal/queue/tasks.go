package queue

import (
	"encoding/json"

	"github.com/nexpetcare/nexpetcare/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskBookingConfirmationEmail booking placed notification
	TaskBookingConfirmationEmail = constants.TaskBookingConfirmationEmail
	// TaskBookingStatusEmail booking status change notification
	TaskBookingStatusEmail = constants.TaskBookingStatusEmail
	// TaskBookingReminderEmail upcoming visit reminder
	TaskBookingReminderEmail = constants.TaskBookingReminderEmail
	// TaskCouponOfferEmail marketing coupon blast
	TaskCouponOfferEmail = constants.TaskCouponOfferEmail
	// TaskServiceAnnounceEmail new service announcement
	TaskServiceAnnounceEmail = constants.TaskServiceAnnounceEmail
	// TaskOTPEmail verification code delivery
	TaskOTPEmail = constants.TaskOTPEmail
)

// BookingEmailPayload payload for confirmation and reminder tasks
type BookingEmailPayload struct {
	BookingID uint `json:"booking_id"`
}

// BookingStatusEmailPayload payload for the status change task
type BookingStatusEmailPayload struct {
	BookingID uint   `json:"booking_id"`
	Status    string `json:"status"`
}

// CouponOfferEmailPayload payload for the coupon blast task
type CouponOfferEmailPayload struct {
	TenantID   uint `json:"tenant_id"`
	CouponID   uint `json:"coupon_id"`
	CustomerID uint `json:"customer_id"`
}

// ServiceAnnounceEmailPayload payload for the service announcement task
type ServiceAnnounceEmailPayload struct {
	TenantID   uint `json:"tenant_id"`
	ServiceID  uint `json:"service_id"`
	CustomerID uint `json:"customer_id"`
}

// OTPEmailPayload payload for the verification code task
type OTPEmailPayload struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	Code    string `json:"code"`
}

// NewBookingConfirmationTask creates a booking confirmation email task
func NewBookingConfirmationTask(payload BookingEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBookingConfirmationEmail, body), nil
}

// NewBookingStatusEmailTask creates a booking status email task
func NewBookingStatusEmailTask(payload BookingStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBookingStatusEmail, body), nil
}

// NewBookingReminderTask creates a booking reminder email task
func NewBookingReminderTask(payload BookingEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBookingReminderEmail, body), nil
}

// NewCouponOfferEmailTask creates a coupon offer email task
func NewCouponOfferEmailTask(payload CouponOfferEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCouponOfferEmail, body), nil
}

// NewServiceAnnounceEmailTask creates a service announcement email task
func NewServiceAnnounceEmailTask(payload ServiceAnnounceEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskServiceAnnounceEmail, body), nil
}

// NewOTPEmailTask creates a verification code email task
func NewOTPEmailTask(payload OTPEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOTPEmail, body), nil
}
