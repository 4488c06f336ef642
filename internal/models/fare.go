package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FareQuoteRequest is the search-side pricing input: no seats are held, the
// caller just wants a deterministic total for a cabin class and passenger mix.
type FareQuoteRequest struct {
	FlightNumber string    `json:"flight_number" binding:"required"`
	SeatClass    SeatClass `json:"seat_class" binding:"required"`
	Adults       int       `json:"adults"`
	Children     int       `json:"children"`
	Infants      int       `json:"infants"`
}

// Validate rejects quote requests that cannot be priced.
func (r *FareQuoteRequest) Validate() error {
	if r.FlightNumber == "" {
		return fmt.Errorf("%w: flight number is required", ErrMalformedBookingRequest)
	}
	if !r.SeatClass.Valid() {
		return fmt.Errorf("%w: unknown seat class %q", ErrMalformedBookingRequest, r.SeatClass)
	}
	if r.Adults < 0 || r.Children < 0 || r.Infants < 0 {
		return fmt.Errorf("%w: passenger counts must be non-negative", ErrMalformedBookingRequest)
	}
	if r.Adults+r.Children+r.Infants == 0 {
		return fmt.Errorf("%w: at least one passenger is required", ErrMalformedBookingRequest)
	}
	if r.Infants > r.Adults {
		return fmt.Errorf("%w: each infant must travel with an adult", ErrMalformedBookingRequest)
	}
	return nil
}

// FareQuote is the priced response. Total is rounded once; the per-line
// amounts are the unrounded components it was derived from.
type FareQuote struct {
	FlightNumber string          `json:"flight_number"`
	SeatClass    SeatClass       `json:"seat_class"`
	BaseFare     decimal.Decimal `json:"base_fare"`
	AdultFare    decimal.Decimal `json:"adult_fare"`
	ChildFare    decimal.Decimal `json:"child_fare"`
	InfantFare   decimal.Decimal `json:"infant_fare"`
	Total        decimal.Decimal `json:"total"`
	Currency     string          `json:"currency"`
}
