package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Flight is reference data owned by the flight-owner surface; the booking
// core reads it for base fares and seat maps.
type Flight struct {
	FlightNumber string          `json:"flight_number" db:"flight_number"`
	Airline      string          `json:"airline" db:"airline"`
	TotalSeats   int             `json:"total_seats" db:"total_seats"`
	BasePrice    decimal.Decimal `json:"base_price" db:"base_price"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// Schedule is one dated departure of a flight. Bookings attach to schedules,
// not flights.
type Schedule struct {
	ID           int64     `json:"id" db:"id"`
	FlightNumber string    `json:"flight_number" db:"flight_number"`
	RouteID      int64     `json:"route_id" db:"route_id"`
	Departure    time.Time `json:"departure" db:"departure"`
	Arrival      time.Time `json:"arrival" db:"arrival"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// SeatClass matches the PostgreSQL ENUM seat_class.
type SeatClass string

const (
	SeatClassEconomy        SeatClass = "economy"
	SeatClassPremiumEconomy SeatClass = "premium_economy"
	SeatClassBusiness       SeatClass = "business"
	SeatClassFirst          SeatClass = "first"
)

// Valid reports whether the class is one of the known cabin classes.
func (c SeatClass) Valid() bool {
	switch c {
	case SeatClassEconomy, SeatClassPremiumEconomy, SeatClassBusiness, SeatClassFirst:
		return true
	}
	return false
}

// SeatDetail is one seat map row of a flight: which cabin class the physical
// seat belongs to. Occupancy is not stored here; a seat is taken on a schedule
// iff a live passenger booking holds it.
type SeatDetail struct {
	SeatNumber   string    `json:"seat_number" db:"seat_number"`
	FlightNumber string    `json:"flight_number" db:"flight_number"`
	SeatClass    SeatClass `json:"seat_class" db:"seat_class"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
