package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
)

// ClinicalRecordService defines the interface for append-only clinical notes
type ClinicalRecordService interface {
	RecordSkinAnalysis(ctx context.Context, record *entities.SkinAnalysis) (*entities.SkinAnalysis, error)
	ListSkinAnalyses(ctx context.Context, patientID string) ([]*entities.SkinAnalysis, error)
	RecordTreatmentProgress(ctx context.Context, record *entities.TreatmentProgress) (*entities.TreatmentProgress, error)
	ListTreatmentProgress(ctx context.Context, patientID string) ([]*entities.TreatmentProgress, error)
}

// ClinicalRecordHandler handles clinical record requests
type ClinicalRecordHandler struct {
	service ClinicalRecordService
}

// NewClinicalRecordHandler creates a new clinical record handler
func NewClinicalRecordHandler(service ClinicalRecordService) *ClinicalRecordHandler {
	return &ClinicalRecordHandler{
		service: service,
	}
}

// CreateSkinAnalysis handles POST /api/skin-analyses
func (h *ClinicalRecordHandler) CreateSkinAnalysis(w http.ResponseWriter, r *http.Request) {
	var record entities.SkinAnalysis
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if record.AppointmentID == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	created, err := h.service.RecordSkinAnalysis(r.Context(), &record)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// ListSkinAnalyses handles GET /api/patients/{id}/skin-analyses
func (h *ClinicalRecordHandler) ListSkinAnalyses(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListSkinAnalyses(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"skin_analyses": records,
		"count":         len(records),
	})
}

// CreateTreatmentProgress handles POST /api/treatment-progress
func (h *ClinicalRecordHandler) CreateTreatmentProgress(w http.ResponseWriter, r *http.Request) {
	var record entities.TreatmentProgress
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if record.AppointmentID == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	created, err := h.service.RecordTreatmentProgress(r.Context(), &record)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// ListTreatmentProgress handles GET /api/patients/{id}/treatment-progress
func (h *ClinicalRecordHandler) ListTreatmentProgress(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListTreatmentProgress(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"treatment_progress": records,
		"count":              len(records),
	})
}
