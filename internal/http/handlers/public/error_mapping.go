package public

import (
	"errors"

	"github.com/nexpetcare/nexpetcare/internal/http/response"
	"github.com/nexpetcare/nexpetcare/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error onto an API error response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var bookingCommonErrorRules = []mappedHandlerError{
	{target: service.ErrServiceNotFound, code: response.CodeNotFound, msg: "service not found"},
	{target: service.ErrServiceInactive, code: response.CodeBadRequest, msg: "service is not available"},
	{target: service.ErrBookingDateInvalid, code: response.CodeBadRequest, msg: "booking date is invalid"},
	{target: service.ErrCouponNotFound, code: response.CodeBadRequest, msg: "coupon not found"},
	{target: service.ErrCouponInactive, code: response.CodeBadRequest, msg: "coupon is inactive"},
	{target: service.ErrCouponExpired, code: response.CodeBadRequest, msg: "coupon has expired"},
}

var customerBookingExtraErrorRules = []mappedHandlerError{
	{target: service.ErrCustomerNotFound, code: response.CodeUnauthorized, msg: "customer not found"},
	{target: service.ErrPetNotFound, code: response.CodeNotFound, msg: "pet not found"},
	{target: service.ErrPetNotOwned, code: response.CodeBadRequest, msg: "pet does not belong to this customer"},
}

var guestBookingExtraErrorRules = []mappedHandlerError{
	{target: service.ErrGuestEmailRequired, code: response.CodeBadRequest, msg: "email is required"},
	{target: service.ErrGuestNameRequired, code: response.CodeBadRequest, msg: "name is required"},
	{target: service.ErrEmailInvalid, code: response.CodeBadRequest, msg: "email is invalid"},
	{target: service.ErrPetNotFound, code: response.CodeBadRequest, msg: "pet details are required"},
}

var customerAuthErrorRules = []mappedHandlerError{
	{target: service.ErrEmailInvalid, code: response.CodeBadRequest, msg: "email is invalid"},
	{target: service.ErrCustomerExists, code: response.CodeBadRequest, msg: "email is already registered"},
	{target: service.ErrAccountNotClaimable, code: response.CodeBadRequest, msg: "account cannot be claimed"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "invalid email or password"},
	{target: service.ErrPasswordTooWeak, code: response.CodeBadRequest, msg: "password does not meet the policy"},
	{target: service.ErrCustomerNotFound, code: response.CodeNotFound, msg: "customer not found"},
}

var otpErrorRules = []mappedHandlerError{
	{target: service.ErrOTPInvalid, code: response.CodeBadRequest, msg: "verification code is invalid"},
	{target: service.ErrOTPExpired, code: response.CodeBadRequest, msg: "verification code has expired"},
	{target: service.ErrOTPThrottled, code: response.CodeTooManyRequests, msg: "verification code requested too frequently"},
	{target: service.ErrQueueUnavailable, code: response.CodeInternal, msg: "verification code delivery unavailable"},
}

var tenantSignupErrorRules = []mappedHandlerError{
	{target: service.ErrEmailInvalid, code: response.CodeBadRequest, msg: "email is invalid"},
	{target: service.ErrTenantExists, code: response.CodeBadRequest, msg: "email is already registered"},
	{target: service.ErrPasswordTooWeak, code: response.CodeBadRequest, msg: "password does not meet the policy"},
	{target: service.ErrSlugUnavailable, code: response.CodeInternal, msg: "store slug could not be generated"},
}

var storefrontErrorRules = []mappedHandlerError{
	{target: service.ErrStoreNotFound, code: response.CodeNotFound, msg: "store not found"},
	{target: service.ErrStoreInactive, code: response.CodeNotFound, msg: "store is not available"},
}

var petErrorRules = []mappedHandlerError{
	{target: service.ErrPetNotFound, code: response.CodeNotFound, msg: "pet not found"},
	{target: service.ErrPetNotOwned, code: response.CodeForbidden, msg: "pet does not belong to this customer"},
}

func respondCustomerBookingError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(bookingCommonErrorRules, customerBookingExtraErrorRules), response.CodeInternal, "booking could not be created")
}

func respondGuestBookingError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(bookingCommonErrorRules, guestBookingExtraErrorRules), response.CodeInternal, "booking could not be created")
}

func respondQuoteError(c *gin.Context, err error) {
	respondWithMappedError(c, err, bookingCommonErrorRules, response.CodeInternal, "quote could not be calculated")
}

func respondStorefrontError(c *gin.Context, err error) {
	respondWithMappedError(c, err, storefrontErrorRules, response.CodeInternal, "store could not be loaded")
}

func respondCustomerAuthError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(customerAuthErrorRules, otpErrorRules), response.CodeInternal, "request failed")
}

func respondTenantSignupError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(tenantSignupErrorRules, otpErrorRules), response.CodeInternal, "signup failed")
}

func respondPetError(c *gin.Context, err error) {
	respondWithMappedError(c, err, petErrorRules, response.CodeInternal, "request failed")
}
