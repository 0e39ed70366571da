package service

import "errors"

var (
	// Storefront resolution
	ErrStoreNotFound   = errors.New("store not found")
	ErrStoreInactive   = errors.New("store inactive")
	ErrServiceNotFound = errors.New("service not found")
	ErrServiceInactive = errors.New("service inactive")
	ErrPetNotFound     = errors.New("pet not found")
	ErrPetNotOwned     = errors.New("pet does not belong to customer")

	// Coupons
	ErrCouponNotFound        = errors.New("coupon not found")
	ErrCouponInactive        = errors.New("coupon inactive")
	ErrCouponExpired         = errors.New("coupon expired")
	ErrCouponInUse           = errors.New("coupon has recorded usage")
	ErrCouponCodeTaken       = errors.New("coupon code already exists")
	ErrCouponDiscountInvalid = errors.New("coupon discount invalid")

	// Bookings
	ErrBookingNotFound     = errors.New("booking not found")
	ErrBookingDateInvalid  = errors.New("booking date invalid")
	ErrBookingCreateFailed = errors.New("booking create failed")
	ErrInvalidStatusChange = errors.New("invalid booking status change")
	ErrGuestEmailRequired  = errors.New("guest email required")
	ErrGuestNameRequired   = errors.New("guest name required")
	ErrEmailInvalid        = errors.New("email invalid")

	// Customer accounts
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrCustomerExists      = errors.New("customer already registered")
	ErrAccountNotClaimable = errors.New("account not claimable")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPasswordTooWeak     = errors.New("password too weak")

	// Staff accounts
	ErrStaffNotFound   = errors.New("staff member not found")
	ErrStaffExists     = errors.New("staff email already in use")
	ErrStaffSelfDelete = errors.New("cannot delete own staff account")
	ErrRoleInvalid     = errors.New("staff role invalid")
	ErrCaptchaInvalid  = errors.New("captcha invalid")

	// Tenant onboarding and billing
	ErrTenantExists         = errors.New("tenant email already registered")
	ErrSlugUnavailable      = errors.New("store slug unavailable")
	ErrSubscriptionInactive = errors.New("subscription inactive")

	// OTP
	ErrOTPInvalid   = errors.New("verification code invalid")
	ErrOTPExpired   = errors.New("verification code expired")
	ErrOTPThrottled = errors.New("verification code requested too frequently")

	// Infrastructure
	ErrQueueUnavailable   = errors.New("task queue unavailable")
	ErrEmailNotConfigured = errors.New("email sender not configured")
	ErrPaymentProvider    = errors.New("payment provider error")
)
