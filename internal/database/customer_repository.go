package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/simplifly/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// CustomerStore resolves customer records to their user accounts. Customer
// CRUD itself lives in the admin surface; the booking core only needs the
// customer → user mapping to answer booking queries by customer.
type CustomerStore interface {
	UserIDForCustomer(customerID int64) (int64, error)
}

// CustomerRepository resolves customers to user IDs.
type CustomerRepository struct {
	db     DB
	logger *logrus.Logger
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db DB, logger *logrus.Logger) *CustomerRepository {
	return &CustomerRepository{db: db, logger: logger}
}

// UserIDForCustomer returns the user account backing a customer record.
func (r *CustomerRepository) UserIDForCustomer(customerID int64) (int64, error) {
	var userID int64
	query := `SELECT user_id FROM customers WHERE id = $1`

	if err := r.db.Get(&userID, query, customerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %d", models.ErrNoSuchCustomer, customerID)
		}
		return 0, fmt.Errorf("failed to resolve customer %d: %w", customerID, err)
	}
	return userID, nil
}
