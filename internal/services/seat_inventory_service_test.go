package services

import (
	"testing"

	"github.com/simplifly/booking-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryFixture() (*memStore, *SeatInventoryService) {
	store := newMemStore()
	store.addSeat("FL001", "A1", models.SeatClassEconomy)
	store.addSeat("FL001", "A2", models.SeatClassEconomy)
	store.addSeat("FL001", "B1", models.SeatClassBusiness)
	return store, NewSeatInventoryService(store, testLogger())
}

func holdSeat(store *memStore, scheduleID int64, seat string) {
	store.nextRowID++
	store.rows[store.nextRowID] = models.PassengerBooking{
		ID:         store.nextRowID,
		BookingID:  1,
		ScheduleID: scheduleID,
		SeatNumber: seat,
	}
}

func TestCheckAvailability(t *testing.T) {
	store, inventory := newInventoryFixture()
	holdSeat(store, 1, "A1")

	t.Run("free seats are available", func(t *testing.T) {
		available, err := inventory.CheckAvailability(1, []string{"A2", "B1"})
		require.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("any held seat makes the selection unavailable", func(t *testing.T) {
		available, err := inventory.CheckAvailability(1, []string{"A1", "A2"})
		require.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("occupancy is per schedule", func(t *testing.T) {
		available, err := inventory.CheckAvailability(2, []string{"A1"})
		require.NoError(t, err)
		assert.True(t, available)
	})
}

func TestFetchSeatDetails(t *testing.T) {
	_, inventory := newInventoryFixture()

	t.Run("returns every requested seat", func(t *testing.T) {
		details, err := inventory.FetchSeatDetails("FL001", []string{"A1", "B1"})
		require.NoError(t, err)
		require.Len(t, details, 2)
	})

	t.Run("unknown seat is fatal and named", func(t *testing.T) {
		_, err := inventory.FetchSeatDetails("FL001", []string{"A1", "Z9"})
		assert.ErrorIs(t, err, models.ErrNoSuchSeat)
		assert.Contains(t, err.Error(), "Z9")
		assert.NotContains(t, err.Error(), "A1,")
	})
}

func TestBookedSeats(t *testing.T) {
	store, inventory := newInventoryFixture()
	holdSeat(store, 1, "A1")
	holdSeat(store, 1, "B1")
	holdSeat(store, 2, "A2")

	seats, err := inventory.BookedSeats(1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A1", "B1"}, seats)
}

func TestUpdateSeatDetails(t *testing.T) {
	store, inventory := newInventoryFixture()

	t.Run("upserts seat map rows", func(t *testing.T) {
		err := inventory.UpdateSeatDetails([]models.SeatDetail{
			{SeatNumber: "A1", FlightNumber: "FL001", SeatClass: models.SeatClassFirst},
		})
		require.NoError(t, err)
		assert.Equal(t, models.SeatClassFirst, store.seats["FL001"]["A1"].SeatClass)
	})

	t.Run("rejects unknown classes before writing", func(t *testing.T) {
		err := inventory.UpdateSeatDetails([]models.SeatDetail{
			{SeatNumber: "A2", FlightNumber: "FL001", SeatClass: "suite"},
		})
		assert.ErrorIs(t, err, models.ErrMalformedBookingRequest)
		assert.Equal(t, models.SeatClassEconomy, store.seats["FL001"]["A2"].SeatClass)
	})
}
