package repositories

import (
	"context"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// Create persists an invoice
	Create(ctx context.Context, invoice *entities.Invoice) error

	// GetByID retrieves an invoice by ID
	GetByID(ctx context.Context, id string) (*entities.Invoice, error)

	// List retrieves invoices, newest first
	List(ctx context.Context, limit, offset int) ([]*entities.Invoice, error)

	// FinalizeSale persists a paid invoice and transitions its source
	// appointment to paid inside a single transaction. Either both writes
	// apply or neither does.
	FinalizeSale(ctx context.Context, invoice *entities.Invoice, appointmentID string) error
}
