package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/observability"
	"github.com/glowpoint/clinic-desk/pkg/config"
	apperrors "github.com/glowpoint/clinic-desk/pkg/errors"
)

// NewPatientRecord carries the registration fields for a walk-in who is not
// in the registry yet
type NewPatientRecord struct {
	FullName                 string   `json:"full_name"`
	Phone                    string   `json:"phone"`
	Email                    string   `json:"email"`
	BirthDate                string   `json:"birth_date"`
	Gender                   string   `json:"gender"`
	IdentityNumber           string   `json:"identity_number"`
	Address                  string   `json:"address"`
	AllergyHistory           string   `json:"allergy_history"`
	MedicalConditions        string   `json:"medical_conditions"`
	Medications              string   `json:"medications"`
	MainComplaint            string   `json:"main_complaint"`
	EmergencyContactName     string   `json:"emergency_contact_name"`
	EmergencyContactRelation string   `json:"emergency_contact_relation"`
	EmergencyContactPhone    string   `json:"emergency_contact_phone"`
	CommunicationPreferences []string `json:"communication_preferences"`
	DataConsent              bool     `json:"data_consent"`
}

// BookingRequest is the input to the booking engine. Exactly one of
// PatientID and NewPatient must be set.
type BookingRequest struct {
	PatientID    string            `json:"patient_id"`
	NewPatient   *NewPatientRecord `json:"new_patient"`
	DoctorID     string            `json:"doctor_id"`
	TreatmentIDs []string          `json:"treatment_ids"`
	Date         string            `json:"date"`
	StartTime    string            `json:"start_time"`
}

// BookingService builds and persists appointments. When the selected patient
// has never had the initial skin analysis, the privileged analysis treatment
// is added to the front of the treatment set before anything else happens;
// the addition is a set union, so a request that already carries it is left
// alone.
type BookingService struct {
	appointmentRepo repositories.AppointmentRepository
	patientRepo     repositories.PatientRepository
	doctorRepo      repositories.DoctorRepository
	treatmentRepo   repositories.TreatmentRepository
	searchRepo      repositories.PatientSearchRepository
	clinic          config.ClinicConfig
}

// NewBookingService creates a new booking service
func NewBookingService(
	appointmentRepo repositories.AppointmentRepository,
	patientRepo repositories.PatientRepository,
	doctorRepo repositories.DoctorRepository,
	treatmentRepo repositories.TreatmentRepository,
	searchRepo repositories.PatientSearchRepository,
	clinic config.ClinicConfig,
) *BookingService {
	return &BookingService{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		treatmentRepo:   treatmentRepo,
		searchRepo:      searchRepo,
		clinic:          clinic,
	}
}

// Book validates the request, resolves or registers the patient, injects the
// analysis treatment when required and persists the appointment as booked.
// The new patient (if any) is persisted before the appointment so a failed
// appointment write never leaves a dangling reference.
func (s *BookingService) Book(ctx context.Context, req *BookingRequest) (*entities.Appointment, error) {
	logger := observability.LoggerFromContext(ctx)

	if req.Date == "" {
		return nil, apperrors.NewValidationError("appointment date is required")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid appointment date %q", req.Date))
	}
	// Same-day walk-ins are allowed; anything earlier is not bookable.
	if req.Date < time.Now().Format("2006-01-02") {
		return nil, apperrors.NewValidationError("appointment date must not be in the past")
	}
	if req.DoctorID == "" {
		return nil, apperrors.NewValidationError("doctor is required")
	}
	if (req.PatientID == "") == (req.NewPatient == nil) {
		return nil, apperrors.NewValidationError("exactly one of patient_id and new_patient must be provided")
	}

	if _, err := s.doctorRepo.GetByID(ctx, req.DoctorID); err != nil {
		return nil, err
	}

	patient, isNew, err := s.resolvePatient(ctx, req)
	if err != nil {
		return nil, err
	}

	treatmentIDs := dedupe(req.TreatmentIDs)

	// Mandatory initial analysis for first-time patients.
	if !patient.HasInitialSkinAnalysis {
		analysis, err := s.treatmentRepo.GetByName(ctx, s.clinic.AnalysisTreatmentName)
		if err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
				return nil, apperrors.NewInternalError(
					fmt.Sprintf("analysis treatment %q is not in the catalog", s.clinic.AnalysisTreatmentName), nil)
			}
			return nil, err
		}
		if !contains(treatmentIDs, analysis.ID) {
			treatmentIDs = append([]string{analysis.ID}, treatmentIDs...)
		}
	}

	if len(treatmentIDs) == 0 {
		return nil, apperrors.NewValidationError("at least one treatment is required")
	}

	totalDuration := 0
	isAnalysisVisit := false
	for _, id := range treatmentIDs {
		treatment, err := s.treatmentRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		totalDuration += treatment.DurationMinutes
		if treatment.Name == s.clinic.AnalysisTreatmentName {
			isAnalysisVisit = true
		}
	}

	startTime := req.StartTime
	if startTime == "" {
		startTime = s.clinic.DefaultSlotTime
	}
	endTime, err := addMinutes(startTime, totalDuration)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid start time %q", startTime))
	}

	if isNew {
		if err := s.patientRepo.Create(ctx, patient); err != nil {
			return nil, err
		}
		if s.searchRepo != nil {
			if err := s.searchRepo.Index(ctx, patient); err != nil {
				logger.Warn().Err(err).Str("patient_id", patient.ID).Msg("failed to index patient")
			}
		}
	}

	now := time.Now()
	appointment := &entities.Appointment{
		ID:                    uuid.New().String(),
		PatientID:             patient.ID,
		DoctorID:              req.DoctorID,
		TreatmentIDs:          treatmentIDs,
		Date:                  req.Date,
		StartTime:             startTime,
		EndTime:               endTime,
		DurationMinutes:       totalDuration,
		Status:                entities.AppointmentStatusBooked,
		IsInitialSkinAnalysis: isAnalysisVisit,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	logger.Info().
		Str("appointment_id", appointment.ID).
		Str("patient_id", patient.ID).
		Str("date", appointment.Date).
		Bool("analysis_visit", isAnalysisVisit).
		Msg("appointment booked")

	return appointment, nil
}

func (s *BookingService) resolvePatient(ctx context.Context, req *BookingRequest) (*entities.Patient, bool, error) {
	if req.PatientID != "" {
		patient, err := s.patientRepo.GetByID(ctx, req.PatientID)
		if err != nil {
			return nil, false, err
		}
		return patient, false, nil
	}

	record := req.NewPatient
	if strings.TrimSpace(record.FullName) == "" {
		return nil, false, apperrors.NewValidationError("patient name is required")
	}
	if strings.TrimSpace(record.Phone) == "" {
		return nil, false, apperrors.NewValidationError("patient phone is required")
	}
	if strings.TrimSpace(record.BirthDate) == "" {
		return nil, false, apperrors.NewValidationError("patient birth date is required")
	}

	now := time.Now()
	patient := &entities.Patient{
		ID:                       uuid.New().String(),
		FullName:                 strings.TrimSpace(record.FullName),
		Phone:                    strings.TrimSpace(record.Phone),
		Email:                    record.Email,
		BirthDate:                record.BirthDate,
		Gender:                   record.Gender,
		IdentityNumber:           record.IdentityNumber,
		Address:                  record.Address,
		AllergyHistory:           record.AllergyHistory,
		MedicalConditions:        record.MedicalConditions,
		Medications:              record.Medications,
		MainComplaint:            record.MainComplaint,
		EmergencyContactName:     record.EmergencyContactName,
		EmergencyContactRelation: record.EmergencyContactRelation,
		EmergencyContactPhone:    record.EmergencyContactPhone,
		CommunicationPreferences: record.CommunicationPreferences,
		DataConsent:              record.DataConsent,
		HasInitialSkinAnalysis:   false,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	return patient, true, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// addMinutes advances an HH:MM clock time. A treatment set that would run
// past midnight is clamped to 23:59 so the end time never precedes the
// start time on the appointment date.
func addMinutes(start string, minutes int) (string, error) {
	t, err := time.Parse("15:04", start)
	if err != nil {
		return "", err
	}
	end := t.Add(time.Duration(minutes) * time.Minute)
	if end.Day() != t.Day() {
		return "23:59", nil
	}
	return end.Format("15:04"), nil
}
