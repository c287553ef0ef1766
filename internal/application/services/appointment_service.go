package services

import (
	"context"
	"fmt"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/observability"
	apperrors "github.com/glowpoint/clinic-desk/pkg/errors"
)

// AppointmentService drives the appointment lifecycle
type AppointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	patientRepo     repositories.PatientRepository
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	appointmentRepo repositories.AppointmentRepository,
	patientRepo repositories.PatientRepository,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
	}
}

// Get retrieves an appointment by ID
func (s *AppointmentService) Get(ctx context.Context, id string) (*entities.Appointment, error) {
	return s.appointmentRepo.GetByID(ctx, id)
}

// List retrieves appointments matching the filter
func (s *AppointmentService) List(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	return s.appointmentRepo.List(ctx, filter)
}

// Complete marks an appointment completed. When the visit carried the
// initial skin analysis and the patient's flag is still false, the flag
// flips to true here; nothing ever flips it back.
func (s *AppointmentService) Complete(ctx context.Context, id string) (*entities.Appointment, error) {
	logger := observability.LoggerFromContext(ctx)

	appointment, err := s.transition(ctx, id, entities.AppointmentStatusCompleted)
	if err != nil {
		return nil, err
	}

	if appointment.IsInitialSkinAnalysis {
		patient, err := s.patientRepo.GetByID(ctx, appointment.PatientID)
		if err != nil {
			return nil, err
		}
		if !patient.HasInitialSkinAnalysis {
			patient.HasInitialSkinAnalysis = true
			if err := s.patientRepo.Update(ctx, patient); err != nil {
				return nil, err
			}
			logger.Info().
				Str("patient_id", patient.ID).
				Msg("initial skin analysis completed")
		}
	}

	return appointment, nil
}

// Cancel marks an appointment cancelled. Terminal: nothing leaves cancelled.
func (s *AppointmentService) Cancel(ctx context.Context, id string) (*entities.Appointment, error) {
	return s.transition(ctx, id, entities.AppointmentStatusCancelled)
}

// Reschedule moves an appointment to a new date and start time. The
// rescheduled appointment behaves as a fresh booking and may be completed,
// cancelled or rescheduled again.
func (s *AppointmentService) Reschedule(ctx context.Context, id, date, startTime string) (*entities.Appointment, error) {
	if date == "" {
		return nil, apperrors.NewValidationError("new date is required")
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !appointment.Status.CanTransitionTo(entities.AppointmentStatusRescheduled) {
		return nil, apperrors.NewStateTransitionError(
			fmt.Sprintf("cannot reschedule appointment in status %s", appointment.Status))
	}

	if startTime == "" {
		startTime = appointment.StartTime
	}
	endTime, err := addMinutes(startTime, appointment.DurationMinutes)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid start time %q", startTime))
	}

	appointment.Date = date
	appointment.StartTime = startTime
	appointment.EndTime = endTime
	appointment.Status = entities.AppointmentStatusRescheduled

	if err := s.appointmentRepo.UpdateSchedule(ctx, appointment); err != nil {
		return nil, err
	}

	return appointment, nil
}

func (s *AppointmentService) transition(ctx context.Context, id string, next entities.AppointmentStatus) (*entities.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !appointment.Status.CanTransitionTo(next) {
		return nil, apperrors.NewStateTransitionError(
			fmt.Sprintf("cannot move appointment from %s to %s", appointment.Status, next))
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	appointment.Status = next

	return appointment, nil
}
