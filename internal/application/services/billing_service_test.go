package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/glowpoint/clinic-desk/internal/application/services"
	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
	apperrors "github.com/glowpoint/clinic-desk/pkg/errors"
)

func newBillingService(
	invoices *MockInvoiceRepository,
	appointments *MockAppointmentRepository,
	treatments *MockTreatmentRepository,
	products *MockProductRepository,
) *services.BillingService {
	return services.NewBillingService(invoices, appointments, treatments, products)
}

func completedAppointment() *entities.Appointment {
	return &entities.Appointment{
		ID:           "a-1",
		PatientID:    "p-1",
		TreatmentIDs: []string{"t-analysis", "t-facial"},
		Status:       entities.AppointmentStatusCompleted,
	}
}

func TestBillingService_CreateDraft(t *testing.T) {
	t.Run("seeds one line per treatment with snapshot prices", func(t *testing.T) {
		invoices := new(MockInvoiceRepository)
		appointments := new(MockAppointmentRepository)
		treatments := new(MockTreatmentRepository)
		products := new(MockProductRepository)
		service := newBillingService(invoices, appointments, treatments, products)

		appointments.On("GetByID", mock.Anything, "a-1").Return(completedAppointment(), nil)
		treatments.On("GetByID", mock.Anything, "t-analysis").Return(analysisTreatment(), nil)
		treatments.On("GetByID", mock.Anything, "t-facial").Return(facialTreatment(), nil)

		draft, err := service.CreateDraft(context.Background(), "a-1")

		assert.NoError(t, err)
		assert.Equal(t, entities.InvoiceStatusPending, draft.Status)
		assert.Len(t, draft.Items, 2)
		assert.Equal(t, entities.InvoiceItemTreatment, draft.Items[0].Type)
		assert.Equal(t, 1, draft.Items[0].Quantity)
		assert.Equal(t, "Hydrating Facial", draft.Items[1].Name)
		assert.Equal(t, 450000.0, draft.Items[1].PricePerUnit)
		assert.Equal(t, 450000.0, draft.TotalAmount)
	})

	t.Run("rejects a non-completed appointment", func(t *testing.T) {
		invoices := new(MockInvoiceRepository)
		appointments := new(MockAppointmentRepository)
		service := newBillingService(invoices, appointments, new(MockTreatmentRepository), new(MockProductRepository))

		booked := completedAppointment()
		booked.Status = entities.AppointmentStatusBooked
		appointments.On("GetByID", mock.Anything, "a-1").Return(booked, nil)

		_, err := service.CreateDraft(context.Background(), "a-1")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStateTransition))
	})
}

func TestBillingService_DraftEditing(t *testing.T) {
	shampoo := &entities.Product{ID: "pr-1", Name: "Gentle Cleanser", Stock: 12, Price: 150000}

	t.Run("adding the same product twice yields two lines", func(t *testing.T) {
		products := new(MockProductRepository)
		service := newBillingService(new(MockInvoiceRepository), new(MockAppointmentRepository), new(MockTreatmentRepository), products)

		products.On("GetByID", mock.Anything, "pr-1").Return(shampoo, nil)

		draft := &entities.Invoice{Status: entities.InvoiceStatusPending}
		assert.NoError(t, service.AddProductItem(context.Background(), draft, "pr-1", 2))
		assert.NoError(t, service.AddProductItem(context.Background(), draft, "pr-1", 1))

		assert.Len(t, draft.Items, 2)
		assert.Equal(t, 300000.0, draft.Items[0].Subtotal)
		assert.Equal(t, 150000.0, draft.Items[1].Subtotal)
		assert.Equal(t, 450000.0, draft.TotalAmount)
	})

	t.Run("rejects a non-positive quantity", func(t *testing.T) {
		service := newBillingService(new(MockInvoiceRepository), new(MockAppointmentRepository), new(MockTreatmentRepository), new(MockProductRepository))

		draft := &entities.Invoice{Status: entities.InvoiceStatusPending}
		err := service.AddProductItem(context.Background(), draft, "pr-1", 0)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("removes a line and recomputes the total", func(t *testing.T) {
		service := newBillingService(new(MockInvoiceRepository), new(MockAppointmentRepository), new(MockTreatmentRepository), new(MockProductRepository))

		draft := &entities.Invoice{
			Status: entities.InvoiceStatusPending,
			Items: []entities.InvoiceItem{
				{Name: "A", Quantity: 1, PricePerUnit: 100},
				{Name: "B", Quantity: 1, PricePerUnit: 250},
			},
		}
		draft.Recalculate()

		assert.NoError(t, service.RemoveItem(draft, 0))
		assert.Len(t, draft.Items, 1)
		assert.Equal(t, "B", draft.Items[0].Name)
		assert.Equal(t, 250.0, draft.TotalAmount)

		err := service.RemoveItem(draft, 5)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestBillingService_Finalize(t *testing.T) {
	draft := func() *entities.Invoice {
		appointmentID := "a-1"
		return &entities.Invoice{
			ID:            "inv-1",
			AppointmentID: &appointmentID,
			PatientID:     "p-1",
			Status:        entities.InvoiceStatusPending,
			Items: []entities.InvoiceItem{
				{Type: entities.InvoiceItemTreatment, Name: "Hydrating Facial", Quantity: 1, PricePerUnit: 450000},
				{Type: entities.InvoiceItemProduct, Name: "Gentle Cleanser", Quantity: 2, PricePerUnit: 150000},
			},
		}
	}

	t.Run("commits invoice and appointment close together", func(t *testing.T) {
		invoices := new(MockInvoiceRepository)
		appointments := new(MockAppointmentRepository)
		service := newBillingService(invoices, appointments, new(MockTreatmentRepository), new(MockProductRepository))

		appointments.On("GetByID", mock.Anything, "a-1").Return(completedAppointment(), nil)
		invoices.On("FinalizeSale", mock.Anything, mock.MatchedBy(func(inv *entities.Invoice) bool {
			return inv.Status == entities.InvoiceStatusPaid &&
				inv.TotalAmount == 750000 &&
				inv.Change == 50000 &&
				inv.PaymentMethod == "Cash" &&
				inv.CashierName == "Rina"
		}), "a-1").Return(nil)

		invoice, err := service.Finalize(context.Background(), draft(), 800000, "Cash", "Rina")

		assert.NoError(t, err)
		assert.Equal(t, entities.InvoiceStatusPaid, invoice.Status)
		assert.NotEmpty(t, invoice.Date)
		assert.NotEmpty(t, invoice.Time)
		invoices.AssertExpectations(t)
	})

	t.Run("rejects payment below the total", func(t *testing.T) {
		invoices := new(MockInvoiceRepository)
		appointments := new(MockAppointmentRepository)
		service := newBillingService(invoices, appointments, new(MockTreatmentRepository), new(MockProductRepository))

		_, err := service.Finalize(context.Background(), draft(), 700000, "Cash", "Rina")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInsufficientPayment))
		invoices.AssertNotCalled(t, "FinalizeSale", mock.Anything, mock.Anything, mock.Anything)
		appointments.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("exact payment leaves zero change", func(t *testing.T) {
		invoices := new(MockInvoiceRepository)
		appointments := new(MockAppointmentRepository)
		service := newBillingService(invoices, appointments, new(MockTreatmentRepository), new(MockProductRepository))

		appointments.On("GetByID", mock.Anything, "a-1").Return(completedAppointment(), nil)
		invoices.On("FinalizeSale", mock.Anything, mock.Anything, "a-1").Return(nil)

		invoice, err := service.Finalize(context.Background(), draft(), 750000, "QRIS", "Rina")

		assert.NoError(t, err)
		assert.Equal(t, 0.0, invoice.Change)
	})

	t.Run("rejects finalizing against an already paid appointment", func(t *testing.T) {
		invoices := new(MockInvoiceRepository)
		appointments := new(MockAppointmentRepository)
		service := newBillingService(invoices, appointments, new(MockTreatmentRepository), new(MockProductRepository))

		paid := completedAppointment()
		paid.Status = entities.AppointmentStatusPaid
		appointments.On("GetByID", mock.Anything, "a-1").Return(paid, nil)

		_, err := service.Finalize(context.Background(), draft(), 800000, "Cash", "Rina")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStateTransition))
		invoices.AssertNotCalled(t, "FinalizeSale", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects an already finalized draft", func(t *testing.T) {
		service := newBillingService(new(MockInvoiceRepository), new(MockAppointmentRepository), new(MockTreatmentRepository), new(MockProductRepository))

		finalized := draft()
		finalized.Status = entities.InvoiceStatusPaid

		_, err := service.Finalize(context.Background(), finalized, 800000, "Cash", "Rina")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStateTransition))
	})

	t.Run("rejects an unknown payment method", func(t *testing.T) {
		service := newBillingService(new(MockInvoiceRepository), new(MockAppointmentRepository), new(MockTreatmentRepository), new(MockProductRepository))

		_, err := service.Finalize(context.Background(), draft(), 800000, "Barter", "Rina")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("walk-in product sale persists without an appointment", func(t *testing.T) {
		invoices := new(MockInvoiceRepository)
		appointments := new(MockAppointmentRepository)
		service := newBillingService(invoices, appointments, new(MockTreatmentRepository), new(MockProductRepository))

		sale := draft()
		sale.AppointmentID = nil

		invoices.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err := service.Finalize(context.Background(), sale, 750000, "Debit", "Rina")

		assert.NoError(t, err)
		invoices.AssertNotCalled(t, "FinalizeSale", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBillingService_PaymentQueue(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	appointments := new(MockAppointmentRepository)
	service := newBillingService(invoices, appointments, new(MockTreatmentRepository), new(MockProductRepository))

	queue := []*entities.Appointment{completedAppointment()}
	appointments.On("List", mock.Anything, repositories.AppointmentFilter{
		Status: entities.AppointmentStatusCompleted,
	}).Return(queue, nil)

	result, err := service.PaymentQueue(context.Background())

	assert.NoError(t, err)
	assert.Len(t, result, 1)
}
