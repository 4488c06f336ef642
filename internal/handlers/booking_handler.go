package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/simplifly/booking-backend/internal/middleware"
	"github.com/simplifly/booking-backend/internal/models"
	"github.com/simplifly/booking-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	bookings *services.BookingService
	logger   *logrus.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookings *services.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{bookings: bookings, logger: logger}
}

// Register mounts the booking routes on the router group.
func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings", h.CreateBooking)
	router.GET("/bookings", h.GetAllBookings)
	router.GET("/bookings/:id", h.GetBookingByID)
	router.DELETE("/bookings/:id", h.CancelBooking)
	router.POST("/bookings/:id/refund", h.RequestRefund)
	router.DELETE("/bookings/:id/passengers/:passengerId", h.CancelBookingByPassenger)
	router.GET("/users/:id/bookings", h.GetUserBookings)
	router.GET("/customers/:id/bookings", h.GetBookingsByCustomer)
	router.GET("/schedules/:id/bookings", h.GetBookingsBySchedule)
	router.GET("/schedules/:id/seats/booked", h.GetBookedSeatsBySchedule)
	router.GET("/flights/:number/bookings", h.GetBookingsByFlight)
}

// CreateBooking creates a new booking
// @Summary Create a new booking
// @Description Reserve seats on a schedule for a list of passengers. All-or-nothing: on failure no seat is held and no payment is recorded.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body models.BookingRequest true "Booking request"
// @Success 201 {object} models.Booking "Booking created"
// @Failure 400 {object} map[string]interface{} "Malformed request"
// @Failure 404 {object} map[string]interface{} "Schedule, flight or seat not found"
// @Failure 409 {object} map[string]interface{} "Seats not available"
// @Security BearerAuth
// @Router /api/v1/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	req.UserID = userCtx.UserID

	booking, err := h.bookings.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetAllBookings lists every booking
// @Summary List all bookings
// @Tags Bookings
// @Produce json
// @Success 200 {array} models.Booking
// @Security BearerAuth
// @Router /api/v1/bookings [get]
func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	bookings, err := h.bookings.GetAllBookings()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingByID returns one booking
// @Summary Get a booking by id
// @Tags Bookings
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} models.Booking
// @Failure 404 {object} map[string]interface{} "Booking not found"
// @Security BearerAuth
// @Router /api/v1/bookings/{id} [get]
func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	booking, err := h.bookings.GetBookingByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CancelBooking destroys a booking and releases its seats
// @Summary Cancel a booking
// @Description Destructive cancellation: releases every seat, voids the payment and removes the booking. Distinct from refund.
// @Tags Bookings
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} models.Booking "The removed booking"
// @Failure 404 {object} map[string]interface{} "Booking not found"
// @Security BearerAuth
// @Router /api/v1/bookings/{id} [delete]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	booking, err := h.bookings.CancelBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// RequestRefund reverses a booking's payment
// @Summary Refund a booking's payment
// @Description Financial reversal only; the booking and its seats stay intact.
// @Tags Bookings
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} map[string]interface{} "Refund accepted"
// @Failure 404 {object} map[string]interface{} "Booking not found"
// @Failure 422 {object} map[string]interface{} "Payment not refundable"
// @Security BearerAuth
// @Router /api/v1/bookings/{id}/refund [post]
func (h *BookingHandler) RequestRefund(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	refunded, err := h.bookings.RequestRefund(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refunded": refunded})
}

// CancelBookingByPassenger releases one passenger's seat
// @Summary Cancel a single passenger's seat
// @Tags Bookings
// @Produce json
// @Param id path int true "Booking ID"
// @Param passengerId path int true "Passenger ID"
// @Success 200 {object} map[string]interface{} "Seat released"
// @Failure 404 {object} map[string]interface{} "Booking or passenger seat not found"
// @Security BearerAuth
// @Router /api/v1/bookings/{id}/passengers/{passengerId} [delete]
func (h *BookingHandler) CancelBookingByPassenger(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	passengerID, ok := pathID(c, "passengerId")
	if !ok {
		return
	}
	if err := h.bookings.CancelBookingByPassenger(c.Request.Context(), id, passengerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// GetUserBookings lists a user's bookings
// @Summary List bookings of a user
// @Tags Bookings
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.Booking
// @Security BearerAuth
// @Router /api/v1/users/{id}/bookings [get]
func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	bookings, err := h.bookings.GetUserBookings(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingsByCustomer lists a customer's bookings
// @Summary List bookings of a customer
// @Tags Bookings
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {array} models.Booking
// @Failure 404 {object} map[string]interface{} "Customer not found"
// @Security BearerAuth
// @Router /api/v1/customers/{id}/bookings [get]
func (h *BookingHandler) GetBookingsByCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	bookings, err := h.bookings.GetBookingsByCustomer(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingsBySchedule lists bookings against a schedule
// @Summary List bookings of a schedule
// @Tags Bookings
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {array} models.Booking
// @Failure 404 {object} map[string]interface{} "Schedule not found"
// @Security BearerAuth
// @Router /api/v1/schedules/{id}/bookings [get]
func (h *BookingHandler) GetBookingsBySchedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	bookings, err := h.bookings.GetBookingsBySchedule(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookedSeatsBySchedule lists the seats held on a schedule
// @Summary List booked seats of a schedule
// @Tags Bookings
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {array} string
// @Failure 404 {object} map[string]interface{} "Schedule not found"
// @Security BearerAuth
// @Router /api/v1/schedules/{id}/seats/booked [get]
func (h *BookingHandler) GetBookedSeatsBySchedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	seats, err := h.bookings.GetBookedSeatsBySchedule(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, seats)
}

// GetBookingsByFlight lists bookings for a flight across its schedules
// @Summary List bookings of a flight
// @Tags Bookings
// @Produce json
// @Param number path string true "Flight number"
// @Success 200 {array} models.Booking
// @Failure 404 {object} map[string]interface{} "Flight not found"
// @Security BearerAuth
// @Router /api/v1/flights/{number}/bookings [get]
func (h *BookingHandler) GetBookingsByFlight(c *gin.Context) {
	flightNumber := c.Param("number")
	bookings, err := h.bookings.GetBookingsByFlight(flightNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// pathID parses a positive integer path parameter, responding 400 on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return id, true
}
