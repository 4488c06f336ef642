package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/simplifly/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// BookingStore persists bookings, their passenger assignments and payments.
// CreateBooking and DeleteBooking are transactional: a booking either exists
// with all of its passenger rows and payment, or not at all.
type BookingStore interface {
	CreateBooking(booking *models.Booking, passengers []models.PassengerBooking, payment *models.Payment) error
	GetByID(id int64) (*models.Booking, error)
	GetAll() ([]models.Booking, error)
	GetByUser(userID int64) ([]models.Booking, error)
	GetBySchedule(scheduleID int64) ([]models.Booking, error)
	GetByFlight(flightNumber string) ([]models.Booking, error)
	GetPassengerBookings(bookingID int64) ([]models.PassengerBooking, error)
	DeleteBooking(bookingID int64) error
	DeletePassengerBooking(bookingID, passengerID int64) error
}

// BookingRepository handles booking persistence.
type BookingRepository struct {
	db     DB
	logger *logrus.Logger
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db DB, logger *logrus.Logger) *BookingRepository {
	return &BookingRepository{db: db, logger: logger}
}

const bookingColumns = `id, schedule_id, user_id, booking_time, total_price, payment_id, status`

// CreateBooking inserts the payment, the booking header and every passenger
// row in one transaction. The unique index on
// passenger_bookings(schedule_id, seat_number) is the durable double-booking
// guard: a concurrent booking that won the race surfaces here as
// ErrSeatsUnavailable and the whole transaction rolls back, leaving no seat
// held and no partial booking.
func (r *BookingRepository) CreateBooking(booking *models.Booking, passengers []models.PassengerBooking, payment *models.Payment) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin booking transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO payments (reference, amount, payment_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		payment.Reference, payment.Amount, payment.PaymentDate, payment.Status,
	).Scan(&payment.ID)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	booking.PaymentID = payment.ID
	err = tx.QueryRow(`
		INSERT INTO bookings (schedule_id, user_id, booking_time, total_price, payment_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		booking.ScheduleID, booking.UserID, booking.BookingTime, booking.TotalPrice, booking.PaymentID, booking.Status,
	).Scan(&booking.ID)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	for i := range passengers {
		passengers[i].BookingID = booking.ID
		passengers[i].ScheduleID = booking.ScheduleID
		err = tx.QueryRow(`
			INSERT INTO passenger_bookings (booking_id, schedule_id, passenger_id, seat_number)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			passengers[i].BookingID, passengers[i].ScheduleID, passengers[i].PassengerID, passengers[i].SeatNumber,
		).Scan(&passengers[i].ID)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: seat %s on schedule %d",
					models.ErrSeatsUnavailable, passengers[i].SeatNumber, booking.ScheduleID)
			}
			return fmt.Errorf("failed to insert passenger booking: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking transaction: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"schedule_id": booking.ScheduleID,
		"user_id":     booking.UserID,
		"seats":       len(passengers),
		"total_price": booking.TotalPrice.String(),
	}).Info("Booking persisted")

	return nil
}

// GetByID returns one booking.
func (r *BookingRepository) GetByID(id int64) (*models.Booking, error) {
	var booking models.Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	if err := r.db.Get(&booking, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", models.ErrNoSuchBooking, id)
		}
		return nil, fmt.Errorf("failed to get booking %d: %w", id, err)
	}
	return &booking, nil
}

// GetAll returns every booking, newest first.
func (r *BookingRepository) GetAll() ([]models.Booking, error) {
	var bookings []models.Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY booking_time DESC`

	if err := r.db.Select(&bookings, query); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// GetByUser returns a user's bookings, newest first.
func (r *BookingRepository) GetByUser(userID int64) ([]models.Booking, error) {
	var bookings []models.Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY booking_time DESC`

	if err := r.db.Select(&bookings, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list bookings for user %d: %w", userID, err)
	}
	return bookings, nil
}

// GetBySchedule returns all bookings against one schedule.
func (r *BookingRepository) GetBySchedule(scheduleID int64) ([]models.Booking, error) {
	var bookings []models.Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE schedule_id = $1 ORDER BY booking_time DESC`

	if err := r.db.Select(&bookings, query, scheduleID); err != nil {
		return nil, fmt.Errorf("failed to list bookings for schedule %d: %w", scheduleID, err)
	}
	return bookings, nil
}

// GetByFlight returns all bookings for a flight, joined through its schedules.
func (r *BookingRepository) GetByFlight(flightNumber string) ([]models.Booking, error) {
	var bookings []models.Booking
	query := `
		SELECT b.id, b.schedule_id, b.user_id, b.booking_time, b.total_price, b.payment_id, b.status
		FROM bookings b
		JOIN schedules s ON s.id = b.schedule_id
		WHERE s.flight_number = $1
		ORDER BY b.booking_time DESC`

	if err := r.db.Select(&bookings, query, flightNumber); err != nil {
		return nil, fmt.Errorf("failed to list bookings for flight %s: %w", flightNumber, err)
	}
	return bookings, nil
}

// GetPassengerBookings returns the passenger-seat assignments of a booking.
func (r *BookingRepository) GetPassengerBookings(bookingID int64) ([]models.PassengerBooking, error) {
	var passengers []models.PassengerBooking
	query := `
		SELECT id, booking_id, schedule_id, passenger_id, seat_number
		FROM passenger_bookings
		WHERE booking_id = $1
		ORDER BY id`

	if err := r.db.Select(&passengers, query, bookingID); err != nil {
		return nil, fmt.Errorf("failed to get passenger bookings for booking %d: %w", bookingID, err)
	}
	return passengers, nil
}

// DeleteBooking removes a booking, its passenger rows and its payment in one
// transaction. Deleting the passenger rows is what releases the seats.
func (r *BookingRepository) DeleteBooking(bookingID int64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin cancel transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM passenger_bookings WHERE booking_id = $1`, bookingID); err != nil {
		return fmt.Errorf("failed to delete passenger bookings for booking %d: %w", bookingID, err)
	}

	var paymentID int64
	err = tx.QueryRow(`DELETE FROM bookings WHERE id = $1 RETURNING payment_id`, bookingID).Scan(&paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %d", models.ErrNoSuchBooking, bookingID)
		}
		return fmt.Errorf("failed to delete booking %d: %w", bookingID, err)
	}

	if _, err := tx.Exec(`DELETE FROM payments WHERE id = $1`, paymentID); err != nil {
		return fmt.Errorf("failed to delete payment %d: %w", paymentID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cancel transaction: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"payment_id": paymentID,
	}).Info("Booking deleted")

	return nil
}

// DeletePassengerBooking removes a single passenger's seat from a live
// booking, leaving the booking, its payment and sibling passengers intact.
func (r *BookingRepository) DeletePassengerBooking(bookingID, passengerID int64) error {
	result, err := r.db.Exec(
		`DELETE FROM passenger_bookings WHERE booking_id = $1 AND passenger_id = $2`,
		bookingID, passengerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete passenger %d from booking %d: %w", passengerID, bookingID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: passenger %d holds no seat on booking %d",
			models.ErrNoSuchBooking, passengerID, bookingID)
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation
// (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
