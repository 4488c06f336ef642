package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simplifly/booking-backend/internal/database"
	"github.com/simplifly/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// PaymentService is the sole authority on payment lifecycle transitions.
// Payment authorization happens upstream at the gateway; this service records
// outcomes and enforces that terminal states are never left.
type PaymentService struct {
	payments database.PaymentStore
	logger   *logrus.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(payments database.PaymentStore, logger *logrus.Logger) *PaymentService {
	return &PaymentService{payments: payments, logger: logger}
}

// Record builds a successful payment record for the given amount. The row is
// persisted by the booking creation transaction so that booking, passenger
// rows and payment commit or roll back together.
func (s *PaymentService) Record(amount decimal.Decimal) (*models.Payment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount %s must be positive", models.ErrPaymentCreation, amount)
	}
	return &models.Payment{
		Reference:   uuid.New(),
		Amount:      amount,
		PaymentDate: time.Now(),
		Status:      models.PaymentStatusSuccessful,
	}, nil
}

// Refund transitions a payment from successful to refunded. Refunding a
// pending, failed or already-refunded payment is rejected with
// ErrInvalidPaymentState; refunded is terminal.
func (s *PaymentService) Refund(paymentID int64) (*models.Payment, error) {
	payment, err := s.payments.UpdateStatusIfCurrent(paymentID, models.PaymentStatusSuccessful, models.PaymentStatusRefunded)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"event_type": "payment_refunded",
		"payment_id": payment.ID,
		"reference":  payment.Reference,
		"amount":     payment.Amount.String(),
	}).Info("Payment refunded")

	return payment, nil
}

// Void removes a payment record as part of an administrative cancellation.
// This is distinct from Refund: the money flow is reversed out of band and
// the record is not kept, but the removal is always audited. Void is
// idempotent — the cancellation transaction may already have removed the row.
func (s *PaymentService) Void(paymentID int64, reference uuid.UUID) error {
	err := s.payments.Delete(paymentID)
	if err != nil && !errors.Is(err, models.ErrNoSuchPayment) {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"event_type": "payment_voided",
		"payment_id": paymentID,
		"reference":  reference,
	}).Info("Payment voided")

	return nil
}

// GetByID returns one payment.
func (s *PaymentService) GetByID(paymentID int64) (*models.Payment, error) {
	return s.payments.GetByID(paymentID)
}
