package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/simplifly/booking-backend/internal/config"
	"github.com/simplifly/booking-backend/internal/models"
)

// FlightCache caches flight reference data for the quote path. Misses and
// cache failures fall through to the flight repository; the cache is never
// authoritative.
type FlightCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFlightCache connects to Redis with the given configuration.
func NewFlightCache(cfg config.RedisConfig) *FlightCache {
	return &FlightCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		ttl: cfg.FlightsTTL,
	}
}

// GetFlight returns the cached flight, or (nil, nil) on a miss.
func (c *FlightCache) GetFlight(ctx context.Context, flightNumber string) (*models.Flight, error) {
	data, err := c.client.Get(ctx, flightKey(flightNumber)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read flight cache: %w", err)
	}

	var flight models.Flight
	if err := json.Unmarshal(data, &flight); err != nil {
		return nil, fmt.Errorf("failed to decode cached flight: %w", err)
	}
	return &flight, nil
}

// SetFlight stores a flight with the configured TTL.
func (c *FlightCache) SetFlight(ctx context.Context, flight *models.Flight) error {
	payload, err := json.Marshal(flight)
	if err != nil {
		return fmt.Errorf("failed to encode flight for cache: %w", err)
	}
	return c.client.Set(ctx, flightKey(flight.FlightNumber), payload, c.ttl).Err()
}

// Close releases the client's connections.
func (c *FlightCache) Close() error {
	return c.client.Close()
}

func flightKey(flightNumber string) string {
	return "cache:flight:" + flightNumber
}
