package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")
	ErrVersionConflict = errors.New("aggregate version conflict, reload and retry")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid login or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")

	// * Business errors.
	ErrOrderNotEditable      = errors.New("order items can not be changed after checkout")
	ErrOrderNotPaid          = errors.New("order is not paid")
	ErrOrderNotShippable     = errors.New("order can not be shipped in its current state")
	ErrOrderNotShipped       = errors.New("order is not shipped yet")
	ErrOrderDelivered        = errors.New("delivered order can not be cancelled")
	ErrPaymentNotRefundable  = errors.New("only a succeeded payment can be refunded")
	ErrPaymentMethodInactive = errors.New("payment method is not active")

	// * Event errors.
	ErrUnknownEventType      = errors.New("unknown event type")
	ErrInvalidWebhookPayload = errors.New("invalid webhook payload")
)
