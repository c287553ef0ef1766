package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
)

// PatientService defines the interface for the patient registry
type PatientService interface {
	Register(ctx context.Context, patient *entities.Patient) (*entities.Patient, error)
	Get(ctx context.Context, id string) (*entities.Patient, error)
	Update(ctx context.Context, patient *entities.Patient) (*entities.Patient, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Patient, error)
	Search(ctx context.Context, query string, limit int) ([]*entities.Patient, error)
}

// PatientHandler handles patient registry requests
type PatientHandler struct {
	service PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(service PatientService) *PatientHandler {
	return &PatientHandler{
		service: service,
	}
}

// Register handles POST /api/patients
func (h *PatientHandler) Register(w http.ResponseWriter, r *http.Request) {
	var patient entities.Patient
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	created, err := h.service.Register(r.Context(), &patient)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// Get handles GET /api/patients/{id}
func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "patient ID is required")
		return
	}

	patient, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, patient)
}

// Update handles PUT /api/patients/{id}
func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "patient ID is required")
		return
	}

	var patient entities.Patient
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	patient.ID = id

	updated, err := h.service.Update(r.Context(), &patient)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// List handles GET /api/patients
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	patients, err := h.service.List(r.Context(),
		parseIntOrDefault(query.Get("limit"), 50),
		parseIntOrDefault(query.Get("offset"), 0))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"patients": patients,
		"count":    len(patients),
	})
}

// Search handles GET /api/patients/search
func (h *PatientHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := query.Get("q")
	if q == "" {
		respondWithError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	patients, err := h.service.Search(r.Context(), q, parseIntOrDefault(query.Get("limit"), 20))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"patients": patients,
		"count":    len(patients),
	})
}
