package repositories

import (
	"context"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
)

// DoctorRepository defines the interface for doctor reference data
type DoctorRepository interface {
	// Create creates a new doctor
	Create(ctx context.Context, doctor *entities.Doctor) error

	// GetByID retrieves a doctor by ID
	GetByID(ctx context.Context, id string) (*entities.Doctor, error)

	// Update updates a doctor
	Update(ctx context.Context, doctor *entities.Doctor) error

	// List retrieves all doctors
	List(ctx context.Context) ([]*entities.Doctor, error)
}
