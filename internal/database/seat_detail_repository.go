package database

import (
	"fmt"

	"github.com/lib/pq"
	"github.com/simplifly/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// SeatDetailStore exposes the seat map and per-schedule occupancy queries.
// Occupancy is derived from live passenger bookings, never stored as a flag,
// so a failed booking transaction cannot leave a seat marked taken.
type SeatDetailStore interface {
	GetByNumbers(flightNumber string, seatNumbers []string) ([]models.SeatDetail, error)
	GetAllForFlight(flightNumber string) ([]models.SeatDetail, error)
	Update(seats []models.SeatDetail) error
	BookedSeatNumbers(scheduleID int64) ([]string, error)
	TakenAmong(scheduleID int64, seatNumbers []string) ([]string, error)
}

// SeatDetailRepository handles seat map rows and occupancy lookups.
type SeatDetailRepository struct {
	db     DB
	logger *logrus.Logger
}

// NewSeatDetailRepository creates a new seat detail repository
func NewSeatDetailRepository(db DB, logger *logrus.Logger) *SeatDetailRepository {
	return &SeatDetailRepository{db: db, logger: logger}
}

// GetByNumbers returns seat map rows for the given seat numbers on a flight.
// Seats absent from the seat map are simply not returned; callers compare
// lengths to detect unknown seats.
func (r *SeatDetailRepository) GetByNumbers(flightNumber string, seatNumbers []string) ([]models.SeatDetail, error) {
	var seats []models.SeatDetail
	query := `
		SELECT seat_number, flight_number, seat_class, created_at, updated_at
		FROM seat_details
		WHERE flight_number = $1 AND seat_number = ANY($2)
		ORDER BY seat_number`

	if err := r.db.Select(&seats, query, flightNumber, pq.Array(seatNumbers)); err != nil {
		return nil, fmt.Errorf("failed to get seat details for flight %s: %w", flightNumber, err)
	}
	return seats, nil
}

// GetAllForFlight returns the full seat map of a flight.
func (r *SeatDetailRepository) GetAllForFlight(flightNumber string) ([]models.SeatDetail, error) {
	var seats []models.SeatDetail
	query := `
		SELECT seat_number, flight_number, seat_class, created_at, updated_at
		FROM seat_details
		WHERE flight_number = $1
		ORDER BY seat_number`

	if err := r.db.Select(&seats, query, flightNumber); err != nil {
		return nil, fmt.Errorf("failed to get seat map for flight %s: %w", flightNumber, err)
	}
	return seats, nil
}

// Update upserts seat map rows (class/metadata changes from the admin surface).
func (r *SeatDetailRepository) Update(seats []models.SeatDetail) error {
	query := `
		INSERT INTO seat_details (seat_number, flight_number, seat_class)
		VALUES ($1, $2, $3)
		ON CONFLICT (flight_number, seat_number)
		DO UPDATE SET seat_class = EXCLUDED.seat_class, updated_at = now()`

	for _, seat := range seats {
		if _, err := r.db.Exec(query, seat.SeatNumber, seat.FlightNumber, seat.SeatClass); err != nil {
			return fmt.Errorf("failed to update seat %s on flight %s: %w", seat.SeatNumber, seat.FlightNumber, err)
		}
	}
	return nil
}

// BookedSeatNumbers returns every seat currently held by a live booking on
// the schedule.
func (r *SeatDetailRepository) BookedSeatNumbers(scheduleID int64) ([]string, error) {
	var seats []string
	query := `
		SELECT seat_number
		FROM passenger_bookings
		WHERE schedule_id = $1
		ORDER BY seat_number`

	if err := r.db.Select(&seats, query, scheduleID); err != nil {
		return nil, fmt.Errorf("failed to get booked seats for schedule %d: %w", scheduleID, err)
	}
	return seats, nil
}

// TakenAmong returns the subset of seatNumbers already held on the schedule.
// Read-only; the durable guard against races is the unique index hit during
// the booking insert, not this check.
func (r *SeatDetailRepository) TakenAmong(scheduleID int64, seatNumbers []string) ([]string, error) {
	var taken []string
	query := `
		SELECT seat_number
		FROM passenger_bookings
		WHERE schedule_id = $1 AND seat_number = ANY($2)`

	if err := r.db.Select(&taken, query, scheduleID, pq.Array(seatNumbers)); err != nil {
		return nil, fmt.Errorf("failed to check seat availability for schedule %d: %w", scheduleID, err)
	}
	return taken, nil
}
