package services

import (
	"context"

	"github.com/simplifly/booking-backend/internal/database"
	"github.com/simplifly/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// FlightCache is the optional read-through cache in front of the flight
// store. (nil, nil) signals a miss.
type FlightCache interface {
	GetFlight(ctx context.Context, flightNumber string) (*models.Flight, error)
	SetFlight(ctx context.Context, flight *models.Flight) error
}

// FareQuoteService serves search-side fare quotes. Quote traffic is far
// hotter than booking traffic and tolerates briefly stale base prices, so
// flight lookups go through a cache when one is configured.
type FareQuoteService struct {
	flights database.FlightStore
	cache   FlightCache // optional; nil disables caching
	pricing *PricingService
	logger  *logrus.Logger
}

// NewFareQuoteService creates a new fare quote service
func NewFareQuoteService(flights database.FlightStore, cache FlightCache, pricing *PricingService, logger *logrus.Logger) *FareQuoteService {
	return &FareQuoteService{flights: flights, cache: cache, pricing: pricing, logger: logger}
}

// QuoteFare prices a passenger mix on a flight. Deterministic, no holds, no
// persistence.
func (s *FareQuoteService) QuoteFare(ctx context.Context, req *models.FareQuoteRequest) (*models.FareQuote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	flight, err := s.lookupFlight(ctx, req.FlightNumber)
	if err != nil {
		return nil, err
	}
	return s.pricing.QuoteFare(flight, req)
}

func (s *FareQuoteService) lookupFlight(ctx context.Context, flightNumber string) (*models.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlight(ctx, flightNumber)
		if err != nil {
			s.logger.WithError(err).Warn("Flight cache read failed, falling back to store")
		} else if cached != nil {
			return cached, nil
		}
	}

	flight, err := s.flights.GetByNumber(flightNumber)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetFlight(ctx, flight); err != nil {
			s.logger.WithError(err).Warn("Flight cache write failed")
		}
	}
	return flight, nil
}
