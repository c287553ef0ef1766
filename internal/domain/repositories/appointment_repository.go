package repositories

import (
	"context"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment data operations.
// Appointments are never deleted, only state-transitioned.
type AppointmentRepository interface {
	// Create creates a new appointment
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves an appointment by ID
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// UpdateStatus writes a new lifecycle status
	UpdateStatus(ctx context.Context, id string, status entities.AppointmentStatus) error

	// UpdateSchedule rewrites date, start/end time and status for a reschedule
	UpdateSchedule(ctx context.Context, appointment *entities.Appointment) error

	// List retrieves appointments matching the filter, earliest date first
	List(ctx context.Context, filter AppointmentFilter) ([]*entities.Appointment, error)
}

// AppointmentFilter defines filters for listing appointments
type AppointmentFilter struct {
	PatientID string
	DoctorID  string
	Status    entities.AppointmentStatus
	Date      string
	Limit     int
	Offset    int
}
