package services

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/simplifly/booking-backend/internal/events"
	"github.com/simplifly/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// memStore is an in-memory stand-in for every store interface the
// orchestrator depends on. It mimics the repository semantics that matter:
// CreateBooking is atomic, the (schedule_id, seat_number) uniqueness rule is
// enforced, and payment transitions are compare-and-swap.
type memStore struct {
	mu sync.Mutex

	flights   map[string]models.Flight
	schedules map[int64]models.Schedule
	seats     map[string]map[string]models.SeatDetail // flight -> seat number -> detail
	bookings  map[int64]models.Booking
	rows      map[int64]models.PassengerBooking
	payments  map[int64]models.Payment
	customers map[int64]int64 // customer id -> user id

	nextBookingID int64
	nextRowID     int64
	nextPaymentID int64

	failCreate error // fault injection for CreateBooking
}

func newMemStore() *memStore {
	return &memStore{
		flights:   make(map[string]models.Flight),
		schedules: make(map[int64]models.Schedule),
		seats:     make(map[string]map[string]models.SeatDetail),
		bookings:  make(map[int64]models.Booking),
		rows:      make(map[int64]models.PassengerBooking),
		payments:  make(map[int64]models.Payment),
		customers: make(map[int64]int64),
	}
}

func (m *memStore) addSeat(flightNumber, seatNumber string, class models.SeatClass) {
	if m.seats[flightNumber] == nil {
		m.seats[flightNumber] = make(map[string]models.SeatDetail)
	}
	m.seats[flightNumber][seatNumber] = models.SeatDetail{
		SeatNumber:   seatNumber,
		FlightNumber: flightNumber,
		SeatClass:    class,
	}
}

// FlightStore

func (m *memStore) GetByNumber(flightNumber string) (*models.Flight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	flight, ok := m.flights[flightNumber]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrNoSuchFlight, flightNumber)
	}
	return &flight, nil
}

func (m *memStore) GetAllFlights() ([]models.Flight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Flight, 0, len(m.flights))
	for _, f := range m.flights {
		out = append(out, f)
	}
	return out, nil
}

// ScheduleStore

func (m *memStore) GetScheduleByID(id int64) (*models.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	schedule, ok := m.schedules[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", models.ErrNoSuchSchedule, id)
	}
	return &schedule, nil
}

func (m *memStore) GetAllSchedules() ([]models.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Schedule, 0, len(m.schedules))
	for _, s := range m.schedules {
		out = append(out, s)
	}
	return out, nil
}

// SeatDetailStore

func (m *memStore) GetByNumbers(flightNumber string, seatNumbers []string) ([]models.SeatDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SeatDetail
	for _, seat := range seatNumbers {
		if detail, ok := m.seats[flightNumber][seat]; ok {
			out = append(out, detail)
		}
	}
	return out, nil
}

func (m *memStore) GetAllForFlight(flightNumber string) ([]models.SeatDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SeatDetail
	for _, detail := range m.seats[flightNumber] {
		out = append(out, detail)
	}
	return out, nil
}

func (m *memStore) Update(seats []models.SeatDetail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, seat := range seats {
		if m.seats[seat.FlightNumber] == nil {
			m.seats[seat.FlightNumber] = make(map[string]models.SeatDetail)
		}
		m.seats[seat.FlightNumber][seat.SeatNumber] = seat
	}
	return nil
}

func (m *memStore) BookedSeatNumbers(scheduleID int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookedSeatsLocked(scheduleID, nil), nil
}

func (m *memStore) TakenAmong(scheduleID int64, seatNumbers []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookedSeatsLocked(scheduleID, seatNumbers), nil
}

func (m *memStore) bookedSeatsLocked(scheduleID int64, among []string) []string {
	filter := map[string]struct{}{}
	for _, seat := range among {
		filter[seat] = struct{}{}
	}
	var out []string
	for _, row := range m.rows {
		if row.ScheduleID != scheduleID {
			continue
		}
		if among != nil {
			if _, ok := filter[row.SeatNumber]; !ok {
				continue
			}
		}
		out = append(out, row.SeatNumber)
	}
	return out
}

// BookingStore

func (m *memStore) CreateBooking(booking *models.Booking, passengers []models.PassengerBooking, payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failCreate != nil {
		return m.failCreate
	}

	held := map[string]struct{}{}
	for _, row := range m.rows {
		if row.ScheduleID == booking.ScheduleID {
			held[row.SeatNumber] = struct{}{}
		}
	}
	for _, p := range passengers {
		if _, taken := held[p.SeatNumber]; taken {
			return fmt.Errorf("%w: seat %s on schedule %d", models.ErrSeatsUnavailable, p.SeatNumber, booking.ScheduleID)
		}
	}

	m.nextPaymentID++
	payment.ID = m.nextPaymentID
	m.payments[payment.ID] = *payment

	m.nextBookingID++
	booking.ID = m.nextBookingID
	booking.PaymentID = payment.ID
	m.bookings[booking.ID] = *booking

	for i := range passengers {
		m.nextRowID++
		passengers[i].ID = m.nextRowID
		passengers[i].BookingID = booking.ID
		passengers[i].ScheduleID = booking.ScheduleID
		m.rows[passengers[i].ID] = passengers[i]
	}
	return nil
}

func (m *memStore) GetByID(id int64) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", models.ErrNoSuchBooking, id)
	}
	return &booking, nil
}

func (m *memStore) GetAll() ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (m *memStore) GetByUser(userID int64) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) GetBySchedule(scheduleID int64) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.ScheduleID == scheduleID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) GetByFlight(flightNumber string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if schedule, ok := m.schedules[b.ScheduleID]; ok && schedule.FlightNumber == flightNumber {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) GetPassengerBookings(bookingID int64) ([]models.PassengerBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.PassengerBooking
	for _, row := range m.rows {
		if row.BookingID == bookingID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memStore) DeleteBooking(bookingID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[bookingID]
	if !ok {
		return fmt.Errorf("%w: %d", models.ErrNoSuchBooking, bookingID)
	}
	for id, row := range m.rows {
		if row.BookingID == bookingID {
			delete(m.rows, id)
		}
	}
	delete(m.payments, booking.PaymentID)
	delete(m.bookings, bookingID)
	return nil
}

func (m *memStore) DeletePassengerBooking(bookingID, passengerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, row := range m.rows {
		if row.BookingID == bookingID && row.PassengerID == passengerID {
			delete(m.rows, id)
			return nil
		}
	}
	return fmt.Errorf("%w: passenger %d holds no seat on booking %d", models.ErrNoSuchBooking, passengerID, bookingID)
}

// PaymentStore

func (m *memStore) GetPaymentByID(id int64) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getPaymentLocked(id)
}

func (m *memStore) getPaymentLocked(id int64) (*models.Payment, error) {
	payment, ok := m.payments[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", models.ErrNoSuchPayment, id)
	}
	return &payment, nil
}

func (m *memStore) UpdateStatusIfCurrent(id int64, from, to models.PaymentStatus) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, err := m.getPaymentLocked(id)
	if err != nil {
		return nil, err
	}
	if payment.Status != from {
		return nil, fmt.Errorf("%w: payment %d is %s, expected %s", models.ErrInvalidPaymentState, id, payment.Status, from)
	}
	payment.Status = to
	m.payments[id] = *payment
	return payment, nil
}

func (m *memStore) DeletePayment(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payments[id]; !ok {
		return fmt.Errorf("%w: %d", models.ErrNoSuchPayment, id)
	}
	delete(m.payments, id)
	return nil
}

// CustomerStore

func (m *memStore) UserIDForCustomer(customerID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	userID, ok := m.customers[customerID]
	if !ok {
		return 0, fmt.Errorf("%w: %d", models.ErrNoSuchCustomer, customerID)
	}
	return userID, nil
}

// Adapter views so one memStore serves every narrow interface without method
// name collisions.

type flightView struct{ *memStore }

func (v flightView) GetByNumber(n string) (*models.Flight, error) { return v.memStore.GetByNumber(n) }
func (v flightView) GetAll() ([]models.Flight, error)             { return v.memStore.GetAllFlights() }

type scheduleView struct{ *memStore }

func (v scheduleView) GetByID(id int64) (*models.Schedule, error) { return v.memStore.GetScheduleByID(id) }
func (v scheduleView) GetAll() ([]models.Schedule, error)         { return v.memStore.GetAllSchedules() }

type paymentView struct{ *memStore }

func (v paymentView) GetByID(id int64) (*models.Payment, error) { return v.memStore.GetPaymentByID(id) }
func (v paymentView) Delete(id int64) error                     { return v.memStore.DeletePayment(id) }
func (v paymentView) UpdateStatusIfCurrent(id int64, from, to models.PaymentStatus) (*models.Payment, error) {
	return v.memStore.UpdateStatusIfCurrent(id, from, to)
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []events.BookingEvent
}

func (p *fakePublisher) Publish(_ context.Context, _ string, event events.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) byType(eventType string) []events.BookingEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.BookingEvent
	for _, e := range p.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
