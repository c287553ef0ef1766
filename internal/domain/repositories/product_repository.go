package repositories

import (
	"context"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
)

// ProductRepository defines the interface for the product catalog
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *entities.Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id string) (*entities.Product, error)

	// Update updates a product
	Update(ctx context.Context, product *entities.Product) error

	// List retrieves all products
	List(ctx context.Context) ([]*entities.Product, error)
}
