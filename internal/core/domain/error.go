package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")
	ErrStatusConflict  = errors.New("order status changed concurrently")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid login or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")
	ErrInvalidSignature           = errors.New("request signature is invalid")

	// * Business errors.
	ErrInvalidTransition   = errors.New("order status transition is not allowed")
	ErrActiveOrderExists   = errors.New("user or device already has an active order")
	ErrDeviceUnavailable   = errors.New("device is not available")
	ErrMerchantNotApproved = errors.New("merchant is not approved")
	ErrInvalidDuration     = errors.New("duration must be between 5 and 240 minutes")
	ErrAmountTooHigh       = errors.New("order amount exceeds the allowed ceiling")
	ErrInsufficientBalance = errors.New("balance is not enough")
	ErrPaymentMethod       = errors.New("operation does not match order payment method")
	ErrOrderExpired        = errors.New("order payment window has expired")
	ErrAmountMismatch      = errors.New("callback amount does not match order amount")
	ErrDeviceStartFailed   = errors.New("device start command failed")
	ErrDeviceStopFailed    = errors.New("device stop command failed, order held for review")
	ErrRefundFailed        = errors.New("refund failed, order returned to pre-refund status")
)
