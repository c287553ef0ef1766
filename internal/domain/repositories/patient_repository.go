package repositories

import (
	"context"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
)

// PatientRepository defines the interface for patient registry operations
type PatientRepository interface {
	// Create creates a new patient
	Create(ctx context.Context, patient *entities.Patient) error

	// GetByID retrieves a patient by ID
	GetByID(ctx context.Context, id string) (*entities.Patient, error)

	// Update updates a patient
	Update(ctx context.Context, patient *entities.Patient) error

	// List retrieves all patients, newest first
	List(ctx context.Context, limit, offset int) ([]*entities.Patient, error)
}

// PatientSearchRepository defines the interface for the front-desk patient
// lookup index (name, phone, email)
type PatientSearchRepository interface {
	// Index adds or refreshes a patient in the search index
	Index(ctx context.Context, patient *entities.Patient) error

	// Delete removes a patient from the index
	Delete(ctx context.Context, id string) error

	// Search finds patients matching the query
	Search(ctx context.Context, query string, limit int) ([]*entities.Patient, error)
}
