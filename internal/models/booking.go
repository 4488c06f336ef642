package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus matches the PostgreSQL ENUM booking_status.
type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is the reservation header. TotalPrice is frozen at creation time and
// is never recomputed afterwards; repricing would silently break the payment
// amount invariant.
type Booking struct {
	ID          int64           `json:"id" db:"id"`
	ScheduleID  int64           `json:"schedule_id" db:"schedule_id"`
	UserID      int64           `json:"user_id" db:"user_id"`
	BookingTime time.Time       `json:"booking_time" db:"booking_time"`
	TotalPrice  decimal.Decimal `json:"total_price" db:"total_price"`
	PaymentID   int64           `json:"payment_id" db:"payment_id"`
	Status      BookingStatus   `json:"status" db:"status"`
}

// PassengerBooking assigns one passenger to one seat within one booking.
// ScheduleID is denormalized from the booking so the database can enforce
// seat-per-schedule uniqueness with a single unique index on
// (schedule_id, seat_number).
type PassengerBooking struct {
	ID          int64  `json:"id" db:"id"`
	BookingID   int64  `json:"booking_id" db:"booking_id"`
	ScheduleID  int64  `json:"schedule_id" db:"schedule_id"`
	PassengerID int64  `json:"passenger_id" db:"passenger_id"`
	SeatNumber  string `json:"seat_number" db:"seat_number"`
}

// BookingRequest is the inbound payload for creating a booking. Seats and
// passengers pair up positionally: SelectedSeats[i] is assigned to
// PassengerIDs[i].
type BookingRequest struct {
	ScheduleID    int64    `json:"schedule_id" binding:"required"`
	UserID        int64    `json:"-"`
	SelectedSeats []string `json:"selected_seats" binding:"required"`
	PassengerIDs  []int64  `json:"passenger_ids" binding:"required"`
}

// Validate rejects malformed requests before any side effect occurs.
func (r *BookingRequest) Validate() error {
	if r.ScheduleID <= 0 {
		return fmt.Errorf("%w: schedule id is required", ErrMalformedBookingRequest)
	}
	if len(r.SelectedSeats) == 0 {
		return fmt.Errorf("%w: at least one seat must be selected", ErrMalformedBookingRequest)
	}
	if len(r.SelectedSeats) != len(r.PassengerIDs) {
		return fmt.Errorf("%w: %d seats selected for %d passengers",
			ErrMalformedBookingRequest, len(r.SelectedSeats), len(r.PassengerIDs))
	}
	seen := make(map[string]struct{}, len(r.SelectedSeats))
	for _, seat := range r.SelectedSeats {
		if seat == "" {
			return fmt.Errorf("%w: empty seat number", ErrMalformedBookingRequest)
		}
		if _, dup := seen[seat]; dup {
			return fmt.Errorf("%w: seat %s selected twice", ErrMalformedBookingRequest, seat)
		}
		seen[seat] = struct{}{}
	}
	for _, id := range r.PassengerIDs {
		if id <= 0 {
			return fmt.Errorf("%w: invalid passenger id %d", ErrMalformedBookingRequest, id)
		}
	}
	return nil
}
