package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/observability"
	apperrors "github.com/glowpoint/clinic-desk/pkg/errors"
)

// PatientService manages the patient registry. Every create and update is
// mirrored into the search index; index failures are logged and swallowed
// because Postgres remains the source of truth.
type PatientService struct {
	patientRepo repositories.PatientRepository
	searchRepo  repositories.PatientSearchRepository
}

// NewPatientService creates a new patient service
func NewPatientService(
	patientRepo repositories.PatientRepository,
	searchRepo repositories.PatientSearchRepository,
) *PatientService {
	return &PatientService{
		patientRepo: patientRepo,
		searchRepo:  searchRepo,
	}
}

// Register creates a new patient record
func (s *PatientService) Register(ctx context.Context, patient *entities.Patient) (*entities.Patient, error) {
	if strings.TrimSpace(patient.FullName) == "" {
		return nil, apperrors.NewValidationError("patient name is required")
	}
	if strings.TrimSpace(patient.Phone) == "" {
		return nil, apperrors.NewValidationError("patient phone is required")
	}
	if strings.TrimSpace(patient.BirthDate) == "" {
		return nil, apperrors.NewValidationError("patient birth date is required")
	}

	now := time.Now()
	patient.ID = uuid.New().String()
	patient.HasInitialSkinAnalysis = false
	patient.CreatedAt = now
	patient.UpdatedAt = now

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}
	s.index(ctx, patient)

	return patient, nil
}

// Get retrieves a patient by ID
func (s *PatientService) Get(ctx context.Context, id string) (*entities.Patient, error) {
	return s.patientRepo.GetByID(ctx, id)
}

// Update rewrites a patient's registration fields. The analysis flag is not
// editable here; only appointment completion moves it.
func (s *PatientService) Update(ctx context.Context, patient *entities.Patient) (*entities.Patient, error) {
	existing, err := s.patientRepo.GetByID(ctx, patient.ID)
	if err != nil {
		return nil, err
	}

	patient.HasInitialSkinAnalysis = existing.HasInitialSkinAnalysis
	patient.CreatedAt = existing.CreatedAt

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}
	s.index(ctx, patient)

	return patient, nil
}

// List retrieves patients, newest first
func (s *PatientService) List(ctx context.Context, limit, offset int) ([]*entities.Patient, error) {
	return s.patientRepo.List(ctx, limit, offset)
}

// Search finds patients by name, phone or email
func (s *PatientService) Search(ctx context.Context, query string, limit int) ([]*entities.Patient, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.NewValidationError("search query is required")
	}
	if s.searchRepo == nil {
		return nil, apperrors.NewExternalError("patient search is not available", nil)
	}
	return s.searchRepo.Search(ctx, query, limit)
}

func (s *PatientService) index(ctx context.Context, patient *entities.Patient) {
	if s.searchRepo == nil {
		return
	}
	if err := s.searchRepo.Index(ctx, patient); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("patient_id", patient.ID).
			Msg("failed to index patient")
	}
}
