package database

import (
	"context"
	"encoding/json"

	"github.com/doug-martin/goqu/v9"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/clients/postgres"
	apperrors "github.com/glowpoint/clinic-desk/pkg/errors"
)

var skinAnalysisColumns = []interface{}{
	"id", "patient_id", "appointment_id", "date", "visual_result",
	"device_result", "recommended_treatment_ids", "recommended_product_ids",
	"notes", "created_at",
}

var treatmentProgressColumns = []interface{}{
	"id", "patient_id", "appointment_id", "date", "note", "created_at",
}

// ClinicalRecordAdapter implements the ClinicalRecordRepository interface.
// Both record kinds are append-only tables.
type ClinicalRecordAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewClinicalRecordAdapter creates a new clinical record adapter
func NewClinicalRecordAdapter(client *postgres.Client) repositories.ClinicalRecordRepository {
	return &ClinicalRecordAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// CreateSkinAnalysis appends a skin analysis record
func (a *ClinicalRecordAdapter) CreateSkinAnalysis(ctx context.Context, record *entities.SkinAnalysis) error {
	treatmentIDs, err := json.Marshal(record.RecommendedTreatmentIDs)
	if err != nil {
		return apperrors.NewInternalError("failed to encode recommendations", err)
	}
	productIDs, err := json.Marshal(record.RecommendedProductIDs)
	if err != nil {
		return apperrors.NewInternalError("failed to encode recommendations", err)
	}

	query, args, err := a.db.Insert("skin_analyses").Rows(goqu.Record{
		"id":                        record.ID,
		"patient_id":                record.PatientID,
		"appointment_id":            record.AppointmentID,
		"date":                      record.Date,
		"visual_result":             record.VisualResult,
		"device_result":             record.DeviceResult,
		"recommended_treatment_ids": treatmentIDs,
		"recommended_product_ids":   productIDs,
		"notes":                     record.Notes,
		"created_at":                record.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("failed to create skin analysis", err)
	}

	return nil
}

// ListSkinAnalysesByPatient retrieves a patient's skin analyses in creation order
func (a *ClinicalRecordAdapter) ListSkinAnalysesByPatient(ctx context.Context, patientID string) ([]*entities.SkinAnalysis, error) {
	query, args, err := a.db.Select(skinAnalysisColumns...).
		From("skin_analyses").
		Where(goqu.Ex{"patient_id": patientID}).
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list skin analyses", err)
	}
	defer rows.Close()

	var records []*entities.SkinAnalysis
	for rows.Next() {
		record := &entities.SkinAnalysis{}
		var treatmentIDs, productIDs []byte

		err := rows.Scan(
			&record.ID,
			&record.PatientID,
			&record.AppointmentID,
			&record.Date,
			&record.VisualResult,
			&record.DeviceResult,
			&treatmentIDs,
			&productIDs,
			&record.Notes,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan skin analysis", err)
		}

		if len(treatmentIDs) > 0 {
			if err := json.Unmarshal(treatmentIDs, &record.RecommendedTreatmentIDs); err != nil {
				return nil, apperrors.NewInternalError("failed to decode recommendations", err)
			}
		}
		if len(productIDs) > 0 {
			if err := json.Unmarshal(productIDs, &record.RecommendedProductIDs); err != nil {
				return nil, apperrors.NewInternalError("failed to decode recommendations", err)
			}
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

// CreateTreatmentProgress appends a treatment progress note
func (a *ClinicalRecordAdapter) CreateTreatmentProgress(ctx context.Context, record *entities.TreatmentProgress) error {
	query, args, err := a.db.Insert("treatment_progress").Rows(goqu.Record{
		"id":             record.ID,
		"patient_id":     record.PatientID,
		"appointment_id": record.AppointmentID,
		"date":           record.Date,
		"note":           record.Note,
		"created_at":     record.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("failed to create treatment progress", err)
	}

	return nil
}

// ListTreatmentProgressByPatient retrieves a patient's progress notes in creation order
func (a *ClinicalRecordAdapter) ListTreatmentProgressByPatient(ctx context.Context, patientID string) ([]*entities.TreatmentProgress, error) {
	query, args, err := a.db.Select(treatmentProgressColumns...).
		From("treatment_progress").
		Where(goqu.Ex{"patient_id": patientID}).
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list treatment progress", err)
	}
	defer rows.Close()

	var records []*entities.TreatmentProgress
	for rows.Next() {
		record := &entities.TreatmentProgress{}
		err := rows.Scan(
			&record.ID,
			&record.PatientID,
			&record.AppointmentID,
			&record.Date,
			&record.Note,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan treatment progress", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
