package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/simplifly/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// PaymentStore persists payment records. Status transitions go through
// UpdateStatusIfCurrent so the legal-transition check and the write are one
// atomic statement.
type PaymentStore interface {
	GetByID(id int64) (*models.Payment, error)
	UpdateStatusIfCurrent(id int64, from, to models.PaymentStatus) (*models.Payment, error)
	Delete(id int64) error
}

// PaymentRepository handles payment persistence.
type PaymentRepository struct {
	db     DB
	logger *logrus.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db DB, logger *logrus.Logger) *PaymentRepository {
	return &PaymentRepository{db: db, logger: logger}
}

// GetByID returns one payment.
func (r *PaymentRepository) GetByID(id int64) (*models.Payment, error) {
	var payment models.Payment
	query := `SELECT id, reference, amount, payment_date, status FROM payments WHERE id = $1`

	if err := r.db.Get(&payment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", models.ErrNoSuchPayment, id)
		}
		return nil, fmt.Errorf("failed to get payment %d: %w", id, err)
	}
	return &payment, nil
}

// UpdateStatusIfCurrent transitions a payment from one status to another.
// The WHERE clause makes the transition a compare-and-swap: if the payment is
// not currently in the expected status the update matches nothing and
// ErrInvalidPaymentState is returned, so a concurrent double-refund cannot
// slip through.
func (r *PaymentRepository) UpdateStatusIfCurrent(id int64, from, to models.PaymentStatus) (*models.Payment, error) {
	var payment models.Payment
	query := `
		UPDATE payments
		SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING id, reference, amount, payment_date, status`

	err := r.db.Get(&payment, query, to, id, from)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			current, getErr := r.GetByID(id)
			if getErr != nil {
				return nil, getErr
			}
			return nil, fmt.Errorf("%w: payment %d is %s, expected %s",
				models.ErrInvalidPaymentState, id, current.Status, from)
		}
		return nil, fmt.Errorf("failed to update payment %d: %w", id, err)
	}

	r.logger.WithFields(logrus.Fields{
		"payment_id": payment.ID,
		"reference":  payment.Reference,
		"from":       from,
		"to":         to,
	}).Info("Payment status updated")

	return &payment, nil
}

// Delete removes a payment record (administrative void).
func (r *PaymentRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", models.ErrNoSuchPayment, id)
	}
	return nil
}
