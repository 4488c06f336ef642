package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/simplifly/booking-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSeatsByNumbers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSeatDetailRepository(db, testLogger())
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM seat_details`).
		WithArgs("FL001", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"seat_number", "flight_number", "seat_class", "created_at", "updated_at",
		}).
			AddRow("A1", "FL001", "economy", now, now).
			AddRow("B1", "FL001", "business", now, now))

	seats, err := repo.GetByNumbers("FL001", []string{"A1", "B1", "Z9"})
	require.NoError(t, err)
	require.Len(t, seats, 2)
	assert.Equal(t, models.SeatClassEconomy, seats[0].SeatClass)
	assert.Equal(t, models.SeatClassBusiness, seats[1].SeatClass)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTakenAmong(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSeatDetailRepository(db, testLogger())

	t.Run("Some Taken", func(t *testing.T) {
		mock.ExpectQuery(`SELECT seat_number\s+FROM passenger_bookings`).
			WithArgs(int64(1), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("A1"))

		taken, err := repo.TakenAmong(1, []string{"A1", "A2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"A1"}, taken)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("All Free", func(t *testing.T) {
		mock.ExpectQuery(`SELECT seat_number\s+FROM passenger_bookings`).
			WithArgs(int64(1), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"seat_number"}))

		taken, err := repo.TakenAmong(1, []string{"A3", "A4"})
		require.NoError(t, err)
		assert.Empty(t, taken)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookedSeatNumbers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSeatDetailRepository(db, testLogger())

	mock.ExpectQuery(`SELECT seat_number\s+FROM passenger_bookings`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).
			AddRow("A1").
			AddRow("A2"))

	seats, err := repo.BookedSeatNumbers(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, seats)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSeats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSeatDetailRepository(db, testLogger())

	mock.ExpectExec(`INSERT INTO seat_details`).
		WithArgs("A1", "FL001", models.SeatClassFirst).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update([]models.SeatDetail{
		{SeatNumber: "A1", FlightNumber: "FL001", SeatClass: models.SeatClassFirst},
	})
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
