package repositories

import (
	"context"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
)

// TreatmentRepository defines the interface for the treatment catalog
type TreatmentRepository interface {
	// Create creates a new treatment
	Create(ctx context.Context, treatment *entities.Treatment) error

	// GetByID retrieves a treatment by ID
	GetByID(ctx context.Context, id string) (*entities.Treatment, error)

	// GetByName retrieves a treatment by its exact catalog name
	GetByName(ctx context.Context, name string) (*entities.Treatment, error)

	// Update updates a treatment
	Update(ctx context.Context, treatment *entities.Treatment) error

	// List retrieves all treatments
	List(ctx context.Context) ([]*entities.Treatment, error)
}
