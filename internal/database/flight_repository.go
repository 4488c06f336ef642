package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/simplifly/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// FlightStore is the read-only flight lookup the booking core depends on.
type FlightStore interface {
	GetByNumber(flightNumber string) (*models.Flight, error)
	GetAll() ([]models.Flight, error)
}

// FlightRepository provides flight reference data. The booking core only
// reads it; fleet CRUD is handled by the flight-owner surface.
type FlightRepository struct {
	db     DB
	logger *logrus.Logger
}

// NewFlightRepository creates a new flight repository
func NewFlightRepository(db DB, logger *logrus.Logger) *FlightRepository {
	return &FlightRepository{db: db, logger: logger}
}

// GetByNumber returns one flight by its flight number.
func (r *FlightRepository) GetByNumber(flightNumber string) (*models.Flight, error) {
	var flight models.Flight
	query := `
		SELECT flight_number, airline, total_seats, base_price, created_at, updated_at
		FROM flights
		WHERE flight_number = $1`

	if err := r.db.Get(&flight, query, flightNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", models.ErrNoSuchFlight, flightNumber)
		}
		return nil, fmt.Errorf("failed to get flight %s: %w", flightNumber, err)
	}
	return &flight, nil
}

// GetAll returns every flight.
func (r *FlightRepository) GetAll() ([]models.Flight, error) {
	var flights []models.Flight
	query := `
		SELECT flight_number, airline, total_seats, base_price, created_at, updated_at
		FROM flights
		ORDER BY flight_number`

	if err := r.db.Select(&flights, query); err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}
	return flights, nil
}
