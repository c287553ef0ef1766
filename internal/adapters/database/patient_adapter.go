package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/clients/postgres"
	apperrors "github.com/glowpoint/clinic-desk/pkg/errors"
)

var patientColumns = []interface{}{
	"id", "full_name", "phone", "email", "birth_date", "gender",
	"identity_number", "address", "allergy_history", "medical_conditions",
	"medications", "treatment_history", "main_complaint",
	"emergency_contact_name", "emergency_contact_relation", "emergency_contact_phone",
	"communication_preferences", "data_consent", "has_initial_skin_analysis",
	"created_at", "updated_at",
}

// PatientAdapter implements the PatientRepository interface
type PatientAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPatientAdapter creates a new patient adapter
func NewPatientAdapter(client *postgres.Client) repositories.PatientRepository {
	return &PatientAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func patientRecord(patient *entities.Patient) (goqu.Record, error) {
	prefs, err := json.Marshal(patient.CommunicationPreferences)
	if err != nil {
		return nil, err
	}
	return goqu.Record{
		"id":                         patient.ID,
		"full_name":                  patient.FullName,
		"phone":                      patient.Phone,
		"email":                      patient.Email,
		"birth_date":                 patient.BirthDate,
		"gender":                     patient.Gender,
		"identity_number":            patient.IdentityNumber,
		"address":                    patient.Address,
		"allergy_history":            patient.AllergyHistory,
		"medical_conditions":         patient.MedicalConditions,
		"medications":                patient.Medications,
		"treatment_history":          patient.TreatmentHistory,
		"main_complaint":             patient.MainComplaint,
		"emergency_contact_name":     patient.EmergencyContactName,
		"emergency_contact_relation": patient.EmergencyContactRelation,
		"emergency_contact_phone":    patient.EmergencyContactPhone,
		"communication_preferences":  prefs,
		"data_consent":               patient.DataConsent,
		"has_initial_skin_analysis":  patient.HasInitialSkinAnalysis,
		"created_at":                 patient.CreatedAt,
		"updated_at":                 patient.UpdatedAt,
	}, nil
}

func scanPatient(scan func(dest ...interface{}) error) (*entities.Patient, error) {
	patient := &entities.Patient{}
	var prefs []byte

	err := scan(
		&patient.ID,
		&patient.FullName,
		&patient.Phone,
		&patient.Email,
		&patient.BirthDate,
		&patient.Gender,
		&patient.IdentityNumber,
		&patient.Address,
		&patient.AllergyHistory,
		&patient.MedicalConditions,
		&patient.Medications,
		&patient.TreatmentHistory,
		&patient.MainComplaint,
		&patient.EmergencyContactName,
		&patient.EmergencyContactRelation,
		&patient.EmergencyContactPhone,
		&prefs,
		&patient.DataConsent,
		&patient.HasInitialSkinAnalysis,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &patient.CommunicationPreferences); err != nil {
			return nil, err
		}
	}

	return patient, nil
}

// Create creates a new patient
func (a *PatientAdapter) Create(ctx context.Context, patient *entities.Patient) error {
	record, err := patientRecord(patient)
	if err != nil {
		return apperrors.NewInternalError("failed to encode patient", err)
	}

	query, args, err := a.db.Insert("patients").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("failed to create patient", err)
	}

	return nil
}

// GetByID retrieves a patient by ID
func (a *PatientAdapter) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	query, args, err := a.db.Select(patientColumns...).
		From("patients").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	patient, err := scanPatient(row.Scan)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("patient with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get patient", err)
	}

	return patient, nil
}

// Update updates a patient
func (a *PatientAdapter) Update(ctx context.Context, patient *entities.Patient) error {
	patient.UpdatedAt = time.Now()

	record, err := patientRecord(patient)
	if err != nil {
		return apperrors.NewInternalError("failed to encode patient", err)
	}
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("patients").
		Set(record).
		Where(goqu.Ex{"id": patient.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewPersistenceError("failed to update patient", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("patient with id %s not found", patient.ID))
	}

	return nil
}

// List retrieves all patients, newest first
func (a *PatientAdapter) List(ctx context.Context, limit, offset int) ([]*entities.Patient, error) {
	ds := a.db.Select(patientColumns...).
		From("patients").
		Order(goqu.I("created_at").Desc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	if offset > 0 {
		ds = ds.Offset(uint(offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list patients", err)
	}
	defer rows.Close()

	var patients []*entities.Patient
	for rows.Next() {
		patient, err := scanPatient(rows.Scan)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan patient", err)
		}
		patients = append(patients, patient)
	}

	return patients, rows.Err()
}
