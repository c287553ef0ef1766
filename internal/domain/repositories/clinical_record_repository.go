package repositories

import (
	"context"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
)

// ClinicalRecordRepository defines the interface for append-only clinical
// notes. There are no update or delete operations.
type ClinicalRecordRepository interface {
	// CreateSkinAnalysis appends a skin analysis record
	CreateSkinAnalysis(ctx context.Context, record *entities.SkinAnalysis) error

	// ListSkinAnalysesByPatient retrieves a patient's skin analyses in
	// creation order
	ListSkinAnalysesByPatient(ctx context.Context, patientID string) ([]*entities.SkinAnalysis, error)

	// CreateTreatmentProgress appends a treatment progress note
	CreateTreatmentProgress(ctx context.Context, record *entities.TreatmentProgress) error

	// ListTreatmentProgressByPatient retrieves a patient's progress notes in
	// creation order
	ListTreatmentProgressByPatient(ctx context.Context, patientID string) ([]*entities.TreatmentProgress, error)
}
