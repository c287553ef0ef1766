package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
)

// CatalogService defines the interface for catalog and roster management
type CatalogService interface {
	CreateTreatment(ctx context.Context, treatment *entities.Treatment) (*entities.Treatment, error)
	GetTreatment(ctx context.Context, id string) (*entities.Treatment, error)
	UpdateTreatment(ctx context.Context, treatment *entities.Treatment) (*entities.Treatment, error)
	ListTreatments(ctx context.Context) ([]*entities.Treatment, error)

	CreateProduct(ctx context.Context, product *entities.Product) (*entities.Product, error)
	GetProduct(ctx context.Context, id string) (*entities.Product, error)
	UpdateProduct(ctx context.Context, product *entities.Product) (*entities.Product, error)
	ListProducts(ctx context.Context) ([]*entities.Product, error)

	CreateDoctor(ctx context.Context, doctor *entities.Doctor) (*entities.Doctor, error)
	GetDoctor(ctx context.Context, id string) (*entities.Doctor, error)
	UpdateDoctor(ctx context.Context, doctor *entities.Doctor) (*entities.Doctor, error)
	ListDoctors(ctx context.Context) ([]*entities.Doctor, error)
}

// CatalogHandler handles treatment, product and doctor requests
type CatalogHandler struct {
	service CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// Treatments

// CreateTreatment handles POST /api/treatments
func (h *CatalogHandler) CreateTreatment(w http.ResponseWriter, r *http.Request) {
	var treatment entities.Treatment
	if err := json.NewDecoder(r.Body).Decode(&treatment); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	created, err := h.service.CreateTreatment(r.Context(), &treatment)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// GetTreatment handles GET /api/treatments/{id}
func (h *CatalogHandler) GetTreatment(w http.ResponseWriter, r *http.Request) {
	treatment, err := h.service.GetTreatment(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, treatment)
}

// UpdateTreatment handles PUT /api/treatments/{id}
func (h *CatalogHandler) UpdateTreatment(w http.ResponseWriter, r *http.Request) {
	var treatment entities.Treatment
	if err := json.NewDecoder(r.Body).Decode(&treatment); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	treatment.ID = r.PathValue("id")

	updated, err := h.service.UpdateTreatment(r.Context(), &treatment)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// ListTreatments handles GET /api/treatments
func (h *CatalogHandler) ListTreatments(w http.ResponseWriter, r *http.Request) {
	treatments, err := h.service.ListTreatments(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"treatments": treatments,
		"count":      len(treatments),
	})
}

// Products

// CreateProduct handles POST /api/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product entities.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	created, err := h.service.CreateProduct(r.Context(), &product)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, product)
}

// UpdateProduct handles PUT /api/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var product entities.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	product.ID = r.PathValue("id")

	updated, err := h.service.UpdateProduct(r.Context(), &product)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// Doctors

// CreateDoctor handles POST /api/doctors
func (h *CatalogHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var doctor entities.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doctor); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	created, err := h.service.CreateDoctor(r.Context(), &doctor)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// GetDoctor handles GET /api/doctors/{id}
func (h *CatalogHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.service.GetDoctor(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, doctor)
}

// UpdateDoctor handles PUT /api/doctors/{id}
func (h *CatalogHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	var doctor entities.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doctor); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	doctor.ID = r.PathValue("id")

	updated, err := h.service.UpdateDoctor(r.Context(), &doctor)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// ListDoctors handles GET /api/doctors
func (h *CatalogHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.ListDoctors(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}
