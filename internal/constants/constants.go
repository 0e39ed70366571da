package constants

// Booking status constants
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCanceled  = "canceled"
)

// Coupon discount type constants
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Tenant subscription status constants
const (
	SubscriptionStatusPending  = "pending"
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)

// Payment log status constants
const (
	PaymentLogStatusSucceeded = "succeeded"
	PaymentLogStatusFailed    = "failed"
)

// Staff role constants
const (
	StaffRoleRoot  = "root"
	StaffRoleAdmin = "admin"
	StaffRoleStaff = "staff"
)

// OTP purpose constants
const (
	OTPPurposeTenantSignup = "tenant_signup"
	OTPPurposeAccountClaim = "account_claim"
)

// Queue and task name constants
const (
	QueueDefault = "default"

	TaskBookingConfirmationEmail = "booking:confirmation_email"
	TaskBookingStatusEmail       = "booking:status_email"
	TaskBookingReminderEmail     = "booking:reminder_email"
	TaskCouponOfferEmail         = "marketing:coupon_offer_email"
	TaskServiceAnnounceEmail     = "marketing:service_announce_email"
	TaskOTPEmail                 = "platform:otp_email"
)

// Captcha scene constants
const (
	CaptchaSceneStaffLogin = "staff_login"
)
