package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simplifly/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// Cabin class fare multipliers applied to a flight's base price.
var classMultipliers = map[models.SeatClass]decimal.Decimal{
	models.SeatClassEconomy:        decimal.NewFromInt(1),
	models.SeatClassPremiumEconomy: decimal.RequireFromString("1.35"),
	models.SeatClassBusiness:       decimal.RequireFromString("1.75"),
	models.SeatClassFirst:          decimal.RequireFromString("2.5"),
}

// Passenger type fare multipliers. Infants travel on an adult's lap and pay a
// nominal fraction.
var (
	childMultiplier  = decimal.RequireFromString("0.5")
	infantMultiplier = decimal.RequireFromString("0.1")
)

// PricingService derives monetary totals from base fares, cabin classes and
// passenger composition. All methods are pure: identical inputs produce
// identical outputs, money stays decimal throughout and rounding happens once
// at the final total, never per line item.
type PricingService struct {
	currency string
	logger   *logrus.Logger
}

// NewPricingService creates a new pricing service
func NewPricingService(currency string, logger *logrus.Logger) *PricingService {
	return &PricingService{currency: currency, logger: logger}
}

// Price is the base contract: base price times seat count.
func (s *PricingService) Price(numberOfSeats int, flight *models.Flight) decimal.Decimal {
	return flight.BasePrice.Mul(decimal.NewFromInt(int64(numberOfSeats))).Round(2)
}

// TotalForSeats prices a concrete seat selection class-aware: each seat
// contributes base price times its cabin class multiplier. The result is what
// gets frozen into Booking.TotalPrice.
func (s *PricingService) TotalForSeats(flight *models.Flight, seats []models.SeatDetail) decimal.Decimal {
	total := decimal.Zero
	for _, seat := range seats {
		multiplier, ok := classMultipliers[seat.SeatClass]
		if !ok {
			multiplier = classMultipliers[models.SeatClassEconomy]
		}
		total = total.Add(flight.BasePrice.Mul(multiplier))
	}
	return total.Round(2)
}

// QuoteFare prices a passenger mix in one cabin class for search and quoting.
// No seats are held and nothing is persisted.
func (s *PricingService) QuoteFare(flight *models.Flight, req *models.FareQuoteRequest) (*models.FareQuote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	classMultiplier, ok := classMultipliers[req.SeatClass]
	if !ok {
		return nil, fmt.Errorf("%w: unknown seat class %q", models.ErrMalformedBookingRequest, req.SeatClass)
	}

	base := flight.BasePrice.Mul(classMultiplier)
	adultFare := base.Mul(decimal.NewFromInt(int64(req.Adults)))
	childFare := base.Mul(childMultiplier).Mul(decimal.NewFromInt(int64(req.Children)))
	infantFare := base.Mul(infantMultiplier).Mul(decimal.NewFromInt(int64(req.Infants)))

	return &models.FareQuote{
		FlightNumber: flight.FlightNumber,
		SeatClass:    req.SeatClass,
		BaseFare:     base,
		AdultFare:    adultFare,
		ChildFare:    childFare,
		InfantFare:   infantFare,
		Total:        adultFare.Add(childFare).Add(infantFare).Round(2),
		Currency:     s.currency,
	}, nil
}
