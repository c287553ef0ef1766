package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/clients/postgres"
	apperrors "github.com/glowpoint/clinic-desk/pkg/errors"
)

var appointmentColumns = []interface{}{
	"id", "patient_id", "doctor_id", "treatment_ids", "date",
	"start_time", "end_time", "duration_minutes", "status",
	"is_initial_skin_analysis", "skin_analysis_id", "treatment_progress_id",
	"created_at", "updated_at",
}

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func scanAppointment(scan func(dest ...interface{}) error) (*entities.Appointment, error) {
	appointment := &entities.Appointment{}
	var treatmentIDs []byte
	var skinAnalysisID, progressID sql.NullString

	err := scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.DoctorID,
		&treatmentIDs,
		&appointment.Date,
		&appointment.StartTime,
		&appointment.EndTime,
		&appointment.DurationMinutes,
		&appointment.Status,
		&appointment.IsInitialSkinAnalysis,
		&skinAnalysisID,
		&progressID,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(treatmentIDs) > 0 {
		if err := json.Unmarshal(treatmentIDs, &appointment.TreatmentIDs); err != nil {
			return nil, err
		}
	}
	if skinAnalysisID.Valid {
		appointment.SkinAnalysisID = &skinAnalysisID.String
	}
	if progressID.Valid {
		appointment.TreatmentProgressID = &progressID.String
	}

	return appointment, nil
}

// Create creates a new appointment
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	treatmentIDs, err := json.Marshal(appointment.TreatmentIDs)
	if err != nil {
		return apperrors.NewInternalError("failed to encode treatment ids", err)
	}

	query, args, err := a.db.Insert("appointments").Rows(goqu.Record{
		"id":                       appointment.ID,
		"patient_id":               appointment.PatientID,
		"doctor_id":                appointment.DoctorID,
		"treatment_ids":            treatmentIDs,
		"date":                     appointment.Date,
		"start_time":               appointment.StartTime,
		"end_time":                 appointment.EndTime,
		"duration_minutes":         appointment.DurationMinutes,
		"status":                   appointment.Status,
		"is_initial_skin_analysis": appointment.IsInitialSkinAnalysis,
		"skin_analysis_id":         nullableString(appointment.SkinAnalysisID),
		"treatment_progress_id":    nullableString(appointment.TreatmentProgressID),
		"created_at":               appointment.CreatedAt,
		"updated_at":               appointment.UpdatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("failed to create appointment", err)
	}

	return nil
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	query, args, err := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	appointment, err := scanAppointment(row.Scan)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get appointment", err)
	}

	return appointment, nil
}

// UpdateStatus writes a new lifecycle status
func (a *AppointmentAdapter) UpdateStatus(ctx context.Context, id string, status entities.AppointmentStatus) error {
	query, args, err := a.db.Update("appointments").Set(goqu.Record{
		"status":     status,
		"updated_at": time.Now(),
	}).Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewPersistenceError("failed to update appointment status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}

	return nil
}

// UpdateSchedule rewrites date, times and status for a reschedule
func (a *AppointmentAdapter) UpdateSchedule(ctx context.Context, appointment *entities.Appointment) error {
	query, args, err := a.db.Update("appointments").Set(goqu.Record{
		"date":       appointment.Date,
		"start_time": appointment.StartTime,
		"end_time":   appointment.EndTime,
		"status":     appointment.Status,
		"updated_at": time.Now(),
	}).Where(goqu.Ex{"id": appointment.ID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewPersistenceError("failed to reschedule appointment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", appointment.ID))
	}

	return nil
}

// List retrieves appointments matching the filter, earliest date first
func (a *AppointmentAdapter) List(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	ds := a.db.Select(appointmentColumns...).
		From("appointments").
		Order(goqu.I("date").Asc(), goqu.I("start_time").Asc())

	where := goqu.Ex{}
	if filter.PatientID != "" {
		where["patient_id"] = filter.PatientID
	}
	if filter.DoctorID != "" {
		where["doctor_id"] = filter.DoctorID
	}
	if filter.Status != "" {
		where["status"] = filter.Status
	}
	if filter.Date != "" {
		where["date"] = filter.Date
	}
	if len(where) > 0 {
		ds = ds.Where(where)
	}

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}
	defer rows.Close()

	var appointments []*entities.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows.Scan)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan appointment", err)
		}
		appointments = append(appointments, appointment)
	}

	return appointments, rows.Err()
}
