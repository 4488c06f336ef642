package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/simplifly/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// ScheduleStore is the read-only schedule lookup the booking core depends on.
type ScheduleStore interface {
	GetByID(id int64) (*models.Schedule, error)
	GetAll() ([]models.Schedule, error)
}

// ScheduleRepository provides schedule reference data.
type ScheduleRepository struct {
	db     DB
	logger *logrus.Logger
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db DB, logger *logrus.Logger) *ScheduleRepository {
	return &ScheduleRepository{db: db, logger: logger}
}

// GetByID returns one schedule.
func (r *ScheduleRepository) GetByID(id int64) (*models.Schedule, error) {
	var schedule models.Schedule
	query := `
		SELECT id, flight_number, route_id, departure, arrival, created_at
		FROM schedules
		WHERE id = $1`

	if err := r.db.Get(&schedule, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", models.ErrNoSuchSchedule, id)
		}
		return nil, fmt.Errorf("failed to get schedule %d: %w", id, err)
	}
	return &schedule, nil
}

// GetAll returns every schedule, soonest departure first.
func (r *ScheduleRepository) GetAll() ([]models.Schedule, error) {
	var schedules []models.Schedule
	query := `
		SELECT id, flight_number, route_id, departure, arrival, created_at
		FROM schedules
		ORDER BY departure`

	if err := r.db.Select(&schedules, query); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}
