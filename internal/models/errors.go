package models

import "errors"

// Failure taxonomy surfaced by the booking core. Handlers and callers branch
// on these with errors.Is; every layer wraps rather than replaces them.
var (
	// Not-found: surfaced verbatim, no retry.
	ErrNoSuchSchedule = errors.New("no such schedule")
	ErrNoSuchFlight   = errors.New("no such flight")
	ErrNoSuchBooking  = errors.New("no such booking")
	ErrNoSuchSeat     = errors.New("no such seat")
	ErrNoSuchPayment  = errors.New("no such payment")
	ErrNoSuchCustomer = errors.New("no such customer")

	// Conflict: the caller must re-query availability and retry with a
	// different seat set. Seats are never silently substituted.
	ErrSeatsUnavailable = errors.New("one or more seats are unavailable")

	// Validation: rejected before any side effect.
	ErrMalformedBookingRequest = errors.New("malformed booking request")

	// State: the payment coordinator is the sole authority on transitions.
	ErrInvalidPaymentState = errors.New("invalid payment state for requested transition")
	ErrPaymentCreation     = errors.New("payment could not be created")
)
