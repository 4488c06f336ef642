package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simplifly/booking-backend/internal/models"
	"github.com/simplifly/booking-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// FareHandler exposes search-side fare quoting.
type FareHandler struct {
	quotes *services.FareQuoteService
	logger *logrus.Logger
}

// NewFareHandler creates a new FareHandler
func NewFareHandler(quotes *services.FareQuoteService, logger *logrus.Logger) *FareHandler {
	return &FareHandler{quotes: quotes, logger: logger}
}

// Register mounts the fare routes on the router group.
func (h *FareHandler) Register(router *gin.RouterGroup) {
	router.POST("/fares/quote", h.QuoteFare)
}

// QuoteFare prices a passenger mix on a flight
// @Summary Quote a fare
// @Description Deterministic class-aware pricing for a passenger mix. No seats are held.
// @Tags Fares
// @Accept json
// @Produce json
// @Param request body models.FareQuoteRequest true "Quote request"
// @Success 200 {object} models.FareQuote
// @Failure 400 {object} map[string]interface{} "Invalid quote request"
// @Failure 404 {object} map[string]interface{} "Flight not found"
// @Router /api/v1/fares/quote [post]
func (h *FareHandler) QuoteFare(c *gin.Context) {
	var req models.FareQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	quote, err := h.quotes.QuoteFare(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
