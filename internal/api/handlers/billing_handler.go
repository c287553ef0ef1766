package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
)

// BillingService defines the interface for the billing engine. Drafts are
// values owned by the desk client: every edit endpoint takes the draft in
// the request body and returns the edited draft.
type BillingService interface {
	CreateDraft(ctx context.Context, appointmentID string) (*entities.Invoice, error)
	AddProductItem(ctx context.Context, draft *entities.Invoice, productID string, quantity int) error
	RemoveItem(draft *entities.Invoice, index int) error
	Finalize(ctx context.Context, draft *entities.Invoice, amountPaid float64, paymentMethod, cashierName string) (*entities.Invoice, error)
	PaymentQueue(ctx context.Context) ([]*entities.Appointment, error)
	GetInvoice(ctx context.Context, id string) (*entities.Invoice, error)
	ListInvoices(ctx context.Context, limit, offset int) ([]*entities.Invoice, error)
}

// BillingHandler handles billing requests
type BillingHandler struct {
	service BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(service BillingService) *BillingHandler {
	return &BillingHandler{
		service: service,
	}
}

// PaymentQueue handles GET /api/billing/queue
func (h *BillingHandler) PaymentQueue(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.PaymentQueue(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// CreateDraft handles POST /api/billing/drafts
func (h *BillingHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AppointmentID string `json:"appointment_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.AppointmentID == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	draft, err := h.service.CreateDraft(r.Context(), req.AppointmentID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, draft)
}

// AddItem handles POST /api/billing/drafts/items
func (h *BillingHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Draft     *entities.Invoice `json:"draft"`
		ProductID string            `json:"product_id"`
		Quantity  int               `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Draft == nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.AddProductItem(r.Context(), req.Draft, req.ProductID, req.Quantity); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, req.Draft)
}

// RemoveItem handles POST /api/billing/drafts/items/remove
func (h *BillingHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Draft *entities.Invoice `json:"draft"`
		Index int               `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Draft == nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.RemoveItem(req.Draft, req.Index); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, req.Draft)
}

// Finalize handles POST /api/billing/invoices
func (h *BillingHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Draft         *entities.Invoice `json:"draft"`
		AmountPaid    float64           `json:"amount_paid"`
		PaymentMethod string            `json:"payment_method"`
		CashierName   string            `json:"cashier_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Draft == nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	invoice, err := h.service.Finalize(r.Context(), req.Draft, req.AmountPaid, req.PaymentMethod, req.CashierName)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, invoice)
}

// ListInvoices handles GET /api/invoices
func (h *BillingHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	invoices, err := h.service.ListInvoices(r.Context(),
		parseIntOrDefault(query.Get("limit"), 50),
		parseIntOrDefault(query.Get("offset"), 0))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"invoices": invoices,
		"count":    len(invoices),
	})
}

// GetInvoice handles GET /api/invoices/{id}
func (h *BillingHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "invoice ID is required")
		return
	}

	invoice, err := h.service.GetInvoice(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, invoice)
}
