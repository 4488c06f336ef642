package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/simplifly/booking-backend/internal/database"
	"github.com/simplifly/booking-backend/internal/events"
	"github.com/simplifly/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// EventPublisher publishes booking lifecycle events. Implementations must be
// safe for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event events.BookingEvent) error
}

// BookingService orchestrates the booking lifecycle: it validates requests,
// checks seat availability, prices the selection, persists the booking
// atomically and later cancels or refunds it, compensating every side effect.
type BookingService struct {
	bookings  database.BookingStore
	schedules database.ScheduleStore
	flights   database.FlightStore
	customers database.CustomerStore
	inventory *SeatInventoryService
	pricing   *PricingService
	payments  *PaymentService
	locks     *scheduleLocks
	producer  EventPublisher // optional; nil disables event publishing
	logger    *logrus.Logger
}

// NewBookingService creates a new booking orchestrator.
func NewBookingService(
	bookings database.BookingStore,
	schedules database.ScheduleStore,
	flights database.FlightStore,
	customers database.CustomerStore,
	inventory *SeatInventoryService,
	pricing *PricingService,
	payments *PaymentService,
	producer EventPublisher,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		schedules: schedules,
		flights:   flights,
		customers: customers,
		inventory: inventory,
		pricing:   pricing,
		payments:  payments,
		locks:     newScheduleLocks(),
		producer:  producer,
		logger:    logger,
	}
}

// CreateBooking converts a seat selection into a priced, payment-backed
// reservation. Creation is all-or-nothing from the caller's viewpoint: on any
// failure no seat is held, no booking exists and no payment is recorded.
//
// The check-then-reserve sequence is serialized per schedule; requests
// against different schedules proceed in parallel.
func (s *BookingService) CreateBooking(ctx context.Context, req *models.BookingRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	schedule, err := s.schedules.GetByID(req.ScheduleID)
	if err != nil {
		return nil, err
	}
	flight, err := s.flights.GetByNumber(schedule.FlightNumber)
	if err != nil {
		return nil, err
	}

	lock := s.locks.acquire(schedule.ID)
	defer lock.Unlock()

	available, err := s.inventory.CheckAvailability(schedule.ID, req.SelectedSeats)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, fmt.Errorf("%w: schedule %d", models.ErrSeatsUnavailable, schedule.ID)
	}

	seatDetails, err := s.inventory.FetchSeatDetails(flight.FlightNumber, req.SelectedSeats)
	if err != nil {
		return nil, err
	}

	totalPrice := s.pricing.TotalForSeats(flight, seatDetails)
	payment, err := s.payments.Record(totalPrice)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ScheduleID:  schedule.ID,
		UserID:      req.UserID,
		BookingTime: time.Now(),
		TotalPrice:  totalPrice,
		Status:      models.BookingStatusActive,
	}
	passengers := make([]models.PassengerBooking, len(req.PassengerIDs))
	for i, passengerID := range req.PassengerIDs {
		passengers[i] = models.PassengerBooking{
			PassengerID: passengerID,
			SeatNumber:  req.SelectedSeats[i],
		}
	}

	if err := s.bookings.CreateBooking(booking, passengers, payment); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"schedule_id": schedule.ID,
		"user_id":     booking.UserID,
		"seats":       req.SelectedSeats,
		"total_price": totalPrice.String(),
	}).Info("Booking created")

	s.publish(ctx, events.TypeBookingCreated, booking, req.SelectedSeats)
	return booking, nil
}

// CancelBooking destroys a booking: every held seat is released, the payment
// is voided and the booking with its passenger rows is removed, all in one
// transaction. This is the destructive path, distinct from RequestRefund.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID int64) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	payment, err := s.payments.GetByID(booking.PaymentID)
	if err != nil {
		return nil, err
	}
	passengers, err := s.bookings.GetPassengerBookings(bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.DeleteBooking(bookingID); err != nil {
		return nil, err
	}
	if err := s.payments.Void(payment.ID, payment.Reference); err != nil {
		return nil, err
	}

	seats := make([]string, len(passengers))
	for i, p := range passengers {
		seats[i] = p.SeatNumber
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":  bookingID,
		"schedule_id": booking.ScheduleID,
		"seats":       seats,
	}).Info("Booking cancelled")

	booking.Status = models.BookingStatusCancelled
	s.publish(ctx, events.TypeBookingCancelled, booking, seats)
	return booking, nil
}

// RequestRefund reverses a booking's payment. The booking and its seats stay
// intact: refund is a financial reversal, not a seat release. Callers wanting
// both chain RequestRefund with CancelBooking.
func (s *BookingService) RequestRefund(ctx context.Context, bookingID int64) (bool, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return false, err
	}
	if _, err := s.payments.Refund(booking.PaymentID); err != nil {
		return false, err
	}

	s.publish(ctx, events.TypeBookingRefunded, booking, nil)
	return true, nil
}

// CancelBookingByPassenger releases a single passenger's seat from a live
// booking. Sibling passengers, the payment and the booking's frozen total
// price are untouched.
func (s *BookingService) CancelBookingByPassenger(ctx context.Context, bookingID, passengerID int64) error {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return err
	}
	if err := s.bookings.DeletePassengerBooking(bookingID, passengerID); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":   bookingID,
		"passenger_id": passengerID,
	}).Info("Passenger booking cancelled")

	s.publish(ctx, events.TypePassengerCancelled, booking, nil)
	return nil
}

// GetAllBookings returns every booking.
func (s *BookingService) GetAllBookings() ([]models.Booking, error) {
	return s.bookings.GetAll()
}

// GetBookingByID returns one booking.
func (s *BookingService) GetBookingByID(bookingID int64) (*models.Booking, error) {
	return s.bookings.GetByID(bookingID)
}

// GetUserBookings returns a user's bookings.
func (s *BookingService) GetUserBookings(userID int64) ([]models.Booking, error) {
	return s.bookings.GetByUser(userID)
}

// GetBookingsBySchedule returns all bookings against one schedule.
func (s *BookingService) GetBookingsBySchedule(scheduleID int64) ([]models.Booking, error) {
	if _, err := s.schedules.GetByID(scheduleID); err != nil {
		return nil, err
	}
	return s.bookings.GetBySchedule(scheduleID)
}

// GetBookingsByFlight returns all bookings for a flight across its schedules.
func (s *BookingService) GetBookingsByFlight(flightNumber string) ([]models.Booking, error) {
	if _, err := s.flights.GetByNumber(flightNumber); err != nil {
		return nil, err
	}
	return s.bookings.GetByFlight(flightNumber)
}

// GetBookedSeatsBySchedule lists the seats held by live bookings on a
// schedule.
func (s *BookingService) GetBookedSeatsBySchedule(scheduleID int64) ([]string, error) {
	if _, err := s.schedules.GetByID(scheduleID); err != nil {
		return nil, err
	}
	return s.inventory.BookedSeats(scheduleID)
}

// GetBookingsByCustomer resolves a customer to its user account and returns
// that user's bookings.
func (s *BookingService) GetBookingsByCustomer(customerID int64) ([]models.Booking, error) {
	userID, err := s.customers.UserIDForCustomer(customerID)
	if err != nil {
		return nil, err
	}
	return s.bookings.GetByUser(userID)
}

// publish emits a lifecycle event. Publishing failures are logged and never
// fail the operation; the booking state is already durable.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *models.Booking, seats []string) {
	if s.producer == nil {
		return
	}
	event := events.BookingEvent{
		EventID:    uuid.New(),
		Type:       eventType,
		BookingID:  booking.ID,
		ScheduleID: booking.ScheduleID,
		UserID:     booking.UserID,
		Seats:      seats,
		TotalPrice: booking.TotalPrice.String(),
		OccurredAt: time.Now(),
	}
	if err := s.producer.Publish(ctx, strconv.FormatInt(booking.ID, 10), event); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"event_type": eventType,
			"booking_id": booking.ID,
		}).Warn("Failed to publish booking event")
	}
}
