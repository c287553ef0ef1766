package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/observability"
	apperrors "github.com/glowpoint/clinic-desk/pkg/errors"
)

// PaymentMethods accepted at the register
var PaymentMethods = []string{"Cash", "Debit", "Credit Card", "QRIS"}

// BillingService builds invoice drafts and finalizes sales. Drafts are plain
// values passed back and forth with the desk client; nothing is persisted
// until Finalize commits the paid invoice and the appointment close together.
type BillingService struct {
	invoiceRepo     repositories.InvoiceRepository
	appointmentRepo repositories.AppointmentRepository
	treatmentRepo   repositories.TreatmentRepository
	productRepo     repositories.ProductRepository
}

// NewBillingService creates a new billing service
func NewBillingService(
	invoiceRepo repositories.InvoiceRepository,
	appointmentRepo repositories.AppointmentRepository,
	treatmentRepo repositories.TreatmentRepository,
	productRepo repositories.ProductRepository,
) *BillingService {
	return &BillingService{
		invoiceRepo:     invoiceRepo,
		appointmentRepo: appointmentRepo,
		treatmentRepo:   treatmentRepo,
		productRepo:     productRepo,
	}
}

// CreateDraft builds a pending invoice from a completed appointment: one
// line per treatment, quantity 1, with name and price snapshotted so later
// catalog edits cannot change the bill.
func (s *BillingService) CreateDraft(ctx context.Context, appointmentID string) (*entities.Invoice, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if appointment.Status != entities.AppointmentStatusCompleted {
		return nil, apperrors.NewStateTransitionError(
			fmt.Sprintf("cannot bill appointment in status %s", appointment.Status))
	}

	items := make([]entities.InvoiceItem, 0, len(appointment.TreatmentIDs))
	for _, id := range appointment.TreatmentIDs {
		treatment, err := s.treatmentRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		items = append(items, entities.InvoiceItem{
			Type:         entities.InvoiceItemTreatment,
			ItemID:       treatment.ID,
			Name:         treatment.Name,
			Quantity:     1,
			PricePerUnit: treatment.Price,
			Subtotal:     treatment.Price,
		})
	}

	draft := &entities.Invoice{
		ID:            uuid.New().String(),
		AppointmentID: &appointment.ID,
		PatientID:     appointment.PatientID,
		Items:         items,
		Status:        entities.InvoiceStatusPending,
	}
	draft.Recalculate()

	return draft, nil
}

// AddProductItem appends a retail product line to a draft with the current
// catalog price snapshotted. Adding the same product twice yields two lines.
func (s *BillingService) AddProductItem(ctx context.Context, draft *entities.Invoice, productID string, quantity int) error {
	if draft.Status != entities.InvoiceStatusPending {
		return apperrors.NewStateTransitionError("cannot edit a finalized invoice")
	}
	if quantity <= 0 {
		return apperrors.NewValidationError("quantity must be positive")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	draft.Items = append(draft.Items, entities.InvoiceItem{
		Type:         entities.InvoiceItemProduct,
		ItemID:       product.ID,
		Name:         product.Name,
		Quantity:     quantity,
		PricePerUnit: product.Price,
	})
	draft.Recalculate()

	return nil
}

// RemoveItem removes the line at index from a draft
func (s *BillingService) RemoveItem(draft *entities.Invoice, index int) error {
	if draft.Status != entities.InvoiceStatusPending {
		return apperrors.NewStateTransitionError("cannot edit a finalized invoice")
	}
	if index < 0 || index >= len(draft.Items) {
		return apperrors.NewValidationError(fmt.Sprintf("no invoice item at index %d", index))
	}

	draft.Items = append(draft.Items[:index], draft.Items[index+1:]...)
	draft.Recalculate()

	return nil
}

// Finalize turns a draft into a paid invoice. The total is recomputed from
// the items, payment below the total is rejected, and the invoice insert
// plus the appointment close commit in one transaction.
func (s *BillingService) Finalize(ctx context.Context, draft *entities.Invoice, amountPaid float64, paymentMethod, cashierName string) (*entities.Invoice, error) {
	logger := observability.LoggerFromContext(ctx)

	if draft.Status != entities.InvoiceStatusPending {
		return nil, apperrors.NewStateTransitionError("invoice is already finalized")
	}
	if len(draft.Items) == 0 {
		return nil, apperrors.NewValidationError("invoice has no items")
	}
	if !validPaymentMethod(paymentMethod) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown payment method %q", paymentMethod))
	}
	if cashierName == "" {
		return nil, apperrors.NewValidationError("cashier name is required")
	}

	total := draft.Recalculate()
	if amountPaid < total {
		return nil, apperrors.NewInsufficientPaymentError(
			fmt.Sprintf("amount paid %.2f is below total %.2f", amountPaid, total))
	}

	now := time.Now()
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	draft.AmountPaid = amountPaid
	draft.Change = amountPaid - total
	draft.PaymentMethod = paymentMethod
	draft.CashierName = cashierName
	draft.Date = now.Format("2006-01-02")
	draft.Time = now.Format("15:04")
	draft.CreatedAt = now
	draft.Status = entities.InvoiceStatusPaid

	if draft.AppointmentID != nil {
		appointment, err := s.appointmentRepo.GetByID(ctx, *draft.AppointmentID)
		if err != nil {
			return nil, err
		}
		if !appointment.Status.CanTransitionTo(entities.AppointmentStatusPaid) {
			return nil, apperrors.NewStateTransitionError(
				fmt.Sprintf("cannot close appointment in status %s", appointment.Status))
		}
		if err := s.invoiceRepo.FinalizeSale(ctx, draft, *draft.AppointmentID); err != nil {
			return nil, err
		}
	} else {
		// Walk-in product sale with no appointment behind it.
		if err := s.invoiceRepo.Create(ctx, draft); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("invoice_id", draft.ID).
		Float64("total", total).
		Str("payment_method", paymentMethod).
		Msg("sale finalized")

	return draft, nil
}

// PaymentQueue lists completed appointments awaiting billing
func (s *BillingService) PaymentQueue(ctx context.Context) ([]*entities.Appointment, error) {
	return s.appointmentRepo.List(ctx, repositories.AppointmentFilter{
		Status: entities.AppointmentStatusCompleted,
	})
}

// GetInvoice retrieves an invoice by ID
func (s *BillingService) GetInvoice(ctx context.Context, id string) (*entities.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

// ListInvoices retrieves invoices, newest first
func (s *BillingService) ListInvoices(ctx context.Context, limit, offset int) ([]*entities.Invoice, error) {
	return s.invoiceRepo.List(ctx, limit, offset)
}

func validPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
