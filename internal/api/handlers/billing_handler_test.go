package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/glowpoint/clinic-desk/internal/api/handlers"
	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	apperrors "github.com/glowpoint/clinic-desk/pkg/errors"
)

type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) CreateDraft(ctx context.Context, appointmentID string) (*entities.Invoice, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Invoice), args.Error(1)
}

func (m *MockBillingService) AddProductItem(ctx context.Context, draft *entities.Invoice, productID string, quantity int) error {
	args := m.Called(ctx, draft, productID, quantity)
	return args.Error(0)
}

func (m *MockBillingService) RemoveItem(draft *entities.Invoice, index int) error {
	args := m.Called(draft, index)
	return args.Error(0)
}

func (m *MockBillingService) Finalize(ctx context.Context, draft *entities.Invoice, amountPaid float64, paymentMethod, cashierName string) (*entities.Invoice, error) {
	args := m.Called(ctx, draft, amountPaid, paymentMethod, cashierName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Invoice), args.Error(1)
}

func (m *MockBillingService) PaymentQueue(ctx context.Context) ([]*entities.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockBillingService) GetInvoice(ctx context.Context, id string) (*entities.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Invoice), args.Error(1)
}

func (m *MockBillingService) ListInvoices(ctx context.Context, limit, offset int) ([]*entities.Invoice, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Invoice), args.Error(1)
}

func TestBillingHandler_CreateDraft(t *testing.T) {
	t.Run("returns draft for completed appointment", func(t *testing.T) {
		mockService := new(MockBillingService)
		handler := handlers.NewBillingHandler(mockService)

		body, _ := json.Marshal(map[string]string{"appointment_id": "a-1"})
		req := httptest.NewRequest("POST", "/api/billing/drafts", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		appointmentID := "a-1"
		mockService.On("CreateDraft", mock.Anything, "a-1").Return(&entities.Invoice{
			ID:            "inv-1",
			AppointmentID: &appointmentID,
			Status:        entities.InvoiceStatusPending,
		}, nil)

		handler.CreateDraft(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("requires appointment id", func(t *testing.T) {
		mockService := new(MockBillingService)
		handler := handlers.NewBillingHandler(mockService)

		body, _ := json.Marshal(map[string]string{})
		req := httptest.NewRequest("POST", "/api/billing/drafts", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.CreateDraft(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "CreateDraft")
	})

	t.Run("maps state transition error to conflict", func(t *testing.T) {
		mockService := new(MockBillingService)
		handler := handlers.NewBillingHandler(mockService)

		body, _ := json.Marshal(map[string]string{"appointment_id": "a-1"})
		req := httptest.NewRequest("POST", "/api/billing/drafts", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		mockService.On("CreateDraft", mock.Anything, "a-1").
			Return(nil, apperrors.NewStateTransitionError("appointment is not completed"))

		handler.CreateDraft(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestBillingHandler_Finalize(t *testing.T) {
	draftPayload := func() map[string]interface{} {
		return map[string]interface{}{
			"draft": map[string]interface{}{
				"id":         "inv-1",
				"patient_id": "p-1",
				"status":     "pending",
				"items": []map[string]interface{}{
					{"type": "treatment", "item_id": "t-facial", "name": "Facial", "quantity": 1, "price_per_unit": 450000},
				},
			},
			"amount_paid":    500000,
			"payment_method": "Cash",
			"cashier_name":   "Rina",
		}
	}

	t.Run("finalizes draft", func(t *testing.T) {
		mockService := new(MockBillingService)
		handler := handlers.NewBillingHandler(mockService)

		body, _ := json.Marshal(draftPayload())
		req := httptest.NewRequest("POST", "/api/billing/invoices", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		mockService.On("Finalize", mock.Anything, mock.MatchedBy(func(d *entities.Invoice) bool {
			return d.ID == "inv-1" && len(d.Items) == 1
		}), 500000.0, "Cash", "Rina").Return(&entities.Invoice{
			ID:     "inv-1",
			Status: entities.InvoiceStatusPaid,
			Change: 50000,
		}, nil)

		handler.Finalize(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var got entities.Invoice
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, entities.InvoiceStatusPaid, got.Status)
		assert.Equal(t, 50000.0, got.Change)
		mockService.AssertExpectations(t)
	})

	t.Run("maps insufficient payment to bad request", func(t *testing.T) {
		mockService := new(MockBillingService)
		handler := handlers.NewBillingHandler(mockService)

		payload := draftPayload()
		payload["amount_paid"] = 100000
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/api/billing/invoices", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		mockService.On("Finalize", mock.Anything, mock.Anything, 100000.0, "Cash", "Rina").
			Return(nil, apperrors.NewInsufficientPaymentError("amount paid is less than total"))

		handler.Finalize(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "amount paid is less than total")
	})

	t.Run("rejects missing draft", func(t *testing.T) {
		mockService := new(MockBillingService)
		handler := handlers.NewBillingHandler(mockService)

		body, _ := json.Marshal(map[string]interface{}{"amount_paid": 500000})
		req := httptest.NewRequest("POST", "/api/billing/invoices", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Finalize(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Finalize")
	})
}

func TestBillingHandler_PaymentQueue(t *testing.T) {
	mockService := new(MockBillingService)
	handler := handlers.NewBillingHandler(mockService)

	req := httptest.NewRequest("GET", "/api/billing/queue", nil)
	w := httptest.NewRecorder()

	mockService.On("PaymentQueue", mock.Anything).Return([]*entities.Appointment{
		{ID: "a-1", Status: entities.AppointmentStatusCompleted},
		{ID: "a-2", Status: entities.AppointmentStatusCompleted},
	}, nil)

	handler.PaymentQueue(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Appointments []*entities.Appointment `json:"appointments"`
		Count        int                     `json:"count"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, 2, got.Count)
	assert.Len(t, got.Appointments, 2)
	mockService.AssertExpectations(t)
}
