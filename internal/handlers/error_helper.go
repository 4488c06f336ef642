package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simplifly/booking-backend/internal/models"
)

// respondError maps the core's failure taxonomy to HTTP statuses:
// not-found → 404, conflicts → 409, validation → 400, illegal payment
// transitions → 422, everything else → 500 with the detail withheld.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNoSuchSchedule),
		errors.Is(err, models.ErrNoSuchFlight),
		errors.Is(err, models.ErrNoSuchBooking),
		errors.Is(err, models.ErrNoSuchSeat),
		errors.Is(err, models.ErrNoSuchPayment),
		errors.Is(err, models.ErrNoSuchCustomer):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrSeatsUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrMalformedBookingRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidPaymentState),
		errors.Is(err, models.ErrPaymentCreation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
