package services

import (
	"fmt"
	"strings"

	"github.com/simplifly/booking-backend/internal/database"
	"github.com/simplifly/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// SeatInventoryService answers seat availability and seat map questions.
// A seat is taken on a schedule iff a live passenger booking holds it, so
// "reserving" happens implicitly when a booking commits and "releasing"
// happens when its passenger rows are deleted. There is no timed hold.
type SeatInventoryService struct {
	seats  database.SeatDetailStore
	logger *logrus.Logger
}

// NewSeatInventoryService creates a new seat inventory service
func NewSeatInventoryService(seats database.SeatDetailStore, logger *logrus.Logger) *SeatInventoryService {
	return &SeatInventoryService{seats: seats, logger: logger}
}

// CheckAvailability reports whether every requested seat is currently free on
// the schedule. Read-only and side-effect free; the caller must not treat a
// true result as a hold.
func (s *SeatInventoryService) CheckAvailability(scheduleID int64, seatNumbers []string) (bool, error) {
	taken, err := s.seats.TakenAmong(scheduleID, seatNumbers)
	if err != nil {
		return false, err
	}
	if len(taken) > 0 {
		s.logger.WithFields(logrus.Fields{
			"schedule_id": scheduleID,
			"taken":       taken,
		}).Debug("Requested seats not available")
		return false, nil
	}
	return true, nil
}

// FetchSeatDetails returns class and metadata for the requested seats of a
// flight. A seat number outside the flight's seat map is fatal for the
// request, distinct from the seat merely being taken.
func (s *SeatInventoryService) FetchSeatDetails(flightNumber string, seatNumbers []string) ([]models.SeatDetail, error) {
	details, err := s.seats.GetByNumbers(flightNumber, seatNumbers)
	if err != nil {
		return nil, err
	}
	if len(details) != len(seatNumbers) {
		found := make(map[string]struct{}, len(details))
		for _, d := range details {
			found[d.SeatNumber] = struct{}{}
		}
		var missing []string
		for _, seat := range seatNumbers {
			if _, ok := found[seat]; !ok {
				missing = append(missing, seat)
			}
		}
		return nil, fmt.Errorf("%w: %s not in seat map of flight %s",
			models.ErrNoSuchSeat, strings.Join(missing, ", "), flightNumber)
	}
	return details, nil
}

// BookedSeats lists every seat held by a live booking on the schedule.
func (s *SeatInventoryService) BookedSeats(scheduleID int64) ([]string, error) {
	return s.seats.BookedSeatNumbers(scheduleID)
}

// UpdateSeatDetails applies seat map changes (class/metadata) from the admin
// surface. Occupancy is untouched; it lives in passenger bookings.
func (s *SeatInventoryService) UpdateSeatDetails(seats []models.SeatDetail) error {
	for _, seat := range seats {
		if !seat.SeatClass.Valid() {
			return fmt.Errorf("%w: unknown seat class %q for seat %s",
				models.ErrMalformedBookingRequest, seat.SeatClass, seat.SeatNumber)
		}
	}
	return s.seats.Update(seats)
}
