package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/glowpoint/clinic-desk/internal/application/services"
	"github.com/glowpoint/clinic-desk/internal/domain/entities"
)

// BookingService defines the interface for the booking engine
type BookingService interface {
	Book(ctx context.Context, req *services.BookingRequest) (*entities.Appointment, error)
}

// BookingHandler handles booking requests
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{
		service: service,
	}
}

// Book handles POST /api/bookings
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req services.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	appointment, err := h.service.Book(r.Context(), &req)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, appointment)
}
