package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
	apperrors "github.com/glowpoint/clinic-desk/pkg/errors"
)

// ClinicalRecordService appends skin analyses and treatment progress notes.
// Records are write-once; there is no update or delete.
type ClinicalRecordService struct {
	recordRepo      repositories.ClinicalRecordRepository
	appointmentRepo repositories.AppointmentRepository
}

// NewClinicalRecordService creates a new clinical record service
func NewClinicalRecordService(
	recordRepo repositories.ClinicalRecordRepository,
	appointmentRepo repositories.AppointmentRepository,
) *ClinicalRecordService {
	return &ClinicalRecordService{
		recordRepo:      recordRepo,
		appointmentRepo: appointmentRepo,
	}
}

// RecordSkinAnalysis appends a skin analysis tied to an existing appointment
func (s *ClinicalRecordService) RecordSkinAnalysis(ctx context.Context, record *entities.SkinAnalysis) (*entities.SkinAnalysis, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, record.AppointmentID)
	if err != nil {
		return nil, err
	}
	record.PatientID = appointment.PatientID

	if strings.TrimSpace(record.VisualResult) == "" && strings.TrimSpace(record.DeviceResult) == "" {
		return nil, apperrors.NewValidationError("skin analysis needs a visual or device result")
	}

	record.ID = uuid.New().String()
	record.CreatedAt = time.Now()
	if record.Date == "" {
		record.Date = appointment.Date
	}

	if err := s.recordRepo.CreateSkinAnalysis(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListSkinAnalyses retrieves a patient's skin analyses in creation order
func (s *ClinicalRecordService) ListSkinAnalyses(ctx context.Context, patientID string) ([]*entities.SkinAnalysis, error) {
	return s.recordRepo.ListSkinAnalysesByPatient(ctx, patientID)
}

// RecordTreatmentProgress appends a progress note tied to an existing appointment
func (s *ClinicalRecordService) RecordTreatmentProgress(ctx context.Context, record *entities.TreatmentProgress) (*entities.TreatmentProgress, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, record.AppointmentID)
	if err != nil {
		return nil, err
	}
	record.PatientID = appointment.PatientID

	if strings.TrimSpace(record.Note) == "" {
		return nil, apperrors.NewValidationError("progress note is required")
	}

	record.ID = uuid.New().String()
	record.CreatedAt = time.Now()
	if record.Date == "" {
		record.Date = appointment.Date
	}

	if err := s.recordRepo.CreateTreatmentProgress(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListTreatmentProgress retrieves a patient's progress notes in creation order
func (s *ClinicalRecordService) ListTreatmentProgress(ctx context.Context, patientID string) ([]*entities.TreatmentProgress, error) {
	return s.recordRepo.ListTreatmentProgressByPatient(ctx, patientID)
}
