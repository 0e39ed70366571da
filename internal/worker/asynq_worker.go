package worker

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/logger"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/provider"
	"github.com/nexpetcare/nexpetcare/internal/queue"
	"github.com/nexpetcare/nexpetcare/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles queued email tasks
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds task handlers onto the mux
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskBookingConfirmationEmail, c.handleBookingConfirmationEmail)
	mux.HandleFunc(queue.TaskBookingStatusEmail, c.handleBookingStatusEmail)
	mux.HandleFunc(queue.TaskBookingReminderEmail, c.handleBookingReminderEmail)
	mux.HandleFunc(queue.TaskCouponOfferEmail, c.handleCouponOfferEmail)
	mux.HandleFunc(queue.TaskServiceAnnounceEmail, c.handleServiceAnnounceEmail)
	mux.HandleFunc(queue.TaskOTPEmail, c.handleOTPEmail)
}

// bookingEmailContext resolves the booking plus everything its emails need.
// A nil booking with nil error means the task should be dropped.
func (c *Consumer) bookingEmailContext(bookingID uint, taskName string) (*models.Booking, string, service.BookingEmailInput, error) {
	var input service.BookingEmailInput
	if bookingID == 0 {
		logger.Debugw("worker_booking_email_skip_invalid_payload", "task", taskName)
		return nil, "", input, nil
	}
	booking, err := c.BookingRepo.GetByID(bookingID)
	if err != nil {
		logger.Warnw("worker_booking_email_fetch_failed", "task", taskName, "booking_id", bookingID, "error", err)
		return nil, "", input, err
	}
	if booking == nil {
		logger.Debugw("worker_booking_email_skip_not_found", "task", taskName, "booking_id", bookingID)
		return nil, "", input, nil
	}

	receiver := ""
	if booking.Customer != nil {
		receiver = strings.TrimSpace(booking.Customer.Email)
	}
	if receiver == "" {
		logger.Debugw("worker_booking_email_skip_empty_receiver", "task", taskName, "booking_id", booking.ID, "booking_no", booking.BookingNo)
		return nil, "", input, nil
	}

	storeName := ""
	if tenant, err := c.TenantRepo.GetByID(booking.TenantID); err == nil && tenant != nil {
		storeName = tenant.Name
	}
	serviceName := ""
	if booking.Service != nil {
		serviceName = booking.Service.Name
	}
	petName := ""
	if booking.Pet != nil {
		petName = booking.Pet.Name
	}

	input = service.BookingEmailInput{
		StoreName:      storeName,
		BookingNo:      booking.BookingNo,
		ServiceName:    serviceName,
		PetName:        petName,
		BookingDate:    booking.BookingDate.Format(time.RFC1123),
		OriginalAmount: booking.OriginalAmount,
		DiscountAmount: booking.DiscountAmount,
		TotalAmount:    booking.TotalAmount,
	}
	return booking, receiver, input, nil
}

func (c *Consumer) handleBookingConfirmationEmail(_ context.Context, task *asynq.Task) error {
	var payload queue.BookingEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_booking_confirmation_unmarshal_failed", "error", err)
		return err
	}
	booking, receiver, input, err := c.bookingEmailContext(payload.BookingID, queue.TaskBookingConfirmationEmail)
	if err != nil || booking == nil {
		return err
	}
	if err := c.EmailService.SendBookingConfirmation(receiver, input); err != nil {
		logger.Warnw("worker_booking_confirmation_send_failed", "booking_id", booking.ID, "booking_no", booking.BookingNo, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleBookingStatusEmail(_ context.Context, task *asynq.Task) error {
	var payload queue.BookingStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_booking_status_unmarshal_failed", "error", err)
		return err
	}
	booking, receiver, input, err := c.bookingEmailContext(payload.BookingID, queue.TaskBookingStatusEmail)
	if err != nil || booking == nil {
		return err
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = booking.Status
	}
	if err := c.EmailService.SendBookingStatusEmail(receiver, input, status); err != nil {
		logger.Warnw("worker_booking_status_send_failed", "booking_id", booking.ID, "status", status, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleBookingReminderEmail(_ context.Context, task *asynq.Task) error {
	var payload queue.BookingEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_booking_reminder_unmarshal_failed", "error", err)
		return err
	}
	booking, receiver, input, err := c.bookingEmailContext(payload.BookingID, queue.TaskBookingReminderEmail)
	if err != nil || booking == nil {
		return err
	}
	// Canceled appointments get no reminder.
	if booking.Status == constants.BookingStatusCanceled {
		logger.Debugw("worker_booking_reminder_skip_canceled", "booking_id", booking.ID)
		return nil
	}
	if err := c.EmailService.SendBookingReminder(receiver, input); err != nil {
		logger.Warnw("worker_booking_reminder_send_failed", "booking_id", booking.ID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleCouponOfferEmail(_ context.Context, task *asynq.Task) error {
	var payload queue.CouponOfferEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_coupon_offer_unmarshal_failed", "error", err)
		return err
	}
	if payload.CouponID == 0 || payload.CustomerID == 0 {
		logger.Debugw("worker_coupon_offer_skip_invalid_payload", "coupon_id", payload.CouponID, "customer_id", payload.CustomerID)
		return nil
	}

	coupon, err := c.CouponRepo.GetByTenantAndID(payload.TenantID, payload.CouponID)
	if err != nil {
		logger.Warnw("worker_coupon_offer_fetch_coupon_failed", "coupon_id", payload.CouponID, "error", err)
		return err
	}
	if coupon == nil || !coupon.IsActive {
		logger.Debugw("worker_coupon_offer_skip_coupon_unavailable", "coupon_id", payload.CouponID)
		return nil
	}
	customer, err := c.CustomerRepo.GetByTenantAndID(payload.TenantID, payload.CustomerID)
	if err != nil {
		logger.Warnw("worker_coupon_offer_fetch_customer_failed", "customer_id", payload.CustomerID, "error", err)
		return err
	}
	if customer == nil || strings.TrimSpace(customer.Email) == "" {
		logger.Debugw("worker_coupon_offer_skip_no_receiver", "customer_id", payload.CustomerID)
		return nil
	}

	storeName := ""
	if tenant, err := c.TenantRepo.GetByID(payload.TenantID); err == nil && tenant != nil {
		storeName = tenant.Name
	}
	input := service.CouponOfferEmailInput{
		StoreName:   storeName,
		Code:        coupon.Code,
		Description: coupon.Description,
		ExpiresAt:   coupon.ExpiresAt.Format("January 2, 2006"),
	}
	if err := c.EmailService.SendCouponOffer(customer.Email, input); err != nil {
		logger.Warnw("worker_coupon_offer_send_failed", "coupon_id", coupon.ID, "customer_id", customer.ID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleServiceAnnounceEmail(_ context.Context, task *asynq.Task) error {
	var payload queue.ServiceAnnounceEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_service_announce_unmarshal_failed", "error", err)
		return err
	}
	if payload.ServiceID == 0 || payload.CustomerID == 0 {
		logger.Debugw("worker_service_announce_skip_invalid_payload", "service_id", payload.ServiceID, "customer_id", payload.CustomerID)
		return nil
	}

	svc, err := c.ServiceRepo.GetByTenantAndID(payload.TenantID, payload.ServiceID)
	if err != nil {
		logger.Warnw("worker_service_announce_fetch_service_failed", "service_id", payload.ServiceID, "error", err)
		return err
	}
	if svc == nil || !svc.IsActive {
		logger.Debugw("worker_service_announce_skip_service_unavailable", "service_id", payload.ServiceID)
		return nil
	}
	customer, err := c.CustomerRepo.GetByTenantAndID(payload.TenantID, payload.CustomerID)
	if err != nil {
		logger.Warnw("worker_service_announce_fetch_customer_failed", "customer_id", payload.CustomerID, "error", err)
		return err
	}
	if customer == nil || strings.TrimSpace(customer.Email) == "" {
		logger.Debugw("worker_service_announce_skip_no_receiver", "customer_id", payload.CustomerID)
		return nil
	}

	storeName := ""
	if tenant, err := c.TenantRepo.GetByID(payload.TenantID); err == nil && tenant != nil {
		storeName = tenant.Name
	}
	input := service.ServiceAnnounceEmailInput{
		StoreName:   storeName,
		ServiceName: svc.Name,
		Description: svc.Description,
		Price:       svc.Price,
	}
	if err := c.EmailService.SendServiceAnnouncement(customer.Email, input); err != nil {
		logger.Warnw("worker_service_announce_send_failed", "service_id", svc.ID, "customer_id", customer.ID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleOTPEmail(_ context.Context, task *asynq.Task) error {
	var payload queue.OTPEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_otp_email_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.Email) == "" || strings.TrimSpace(payload.Code) == "" {
		logger.Debugw("worker_otp_email_skip_invalid_payload", "email", payload.Email)
		return nil
	}
	if err := c.EmailService.SendVerificationCode(payload.Email, payload.Code, payload.Purpose); err != nil {
		logger.Warnw("worker_otp_email_send_failed", "email", payload.Email, "purpose", payload.Purpose, "error", err)
		return err
	}
	return nil
}
