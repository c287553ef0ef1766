package entities

import (
	"time"
)

// SkinAnalysis is an append-only clinical note recorded during a visit.
// Never mutated after creation.
type SkinAnalysis struct {
	ID                      string    `json:"id" db:"id"`
	PatientID               string    `json:"patient_id" db:"patient_id"`
	AppointmentID           string    `json:"appointment_id" db:"appointment_id"`
	Date                    string    `json:"date" db:"date"`
	VisualResult            string    `json:"visual_result" db:"visual_result"`
	DeviceResult            string    `json:"device_result" db:"device_result"`
	RecommendedTreatmentIDs []string  `json:"recommended_treatment_ids" db:"recommended_treatment_ids"`
	RecommendedProductIDs   []string  `json:"recommended_product_ids" db:"recommended_product_ids"`
	Notes                   string    `json:"notes" db:"notes"`
	CreatedAt               time.Time `json:"created_at" db:"created_at"`
}

// TreatmentProgress is an append-only progress note linked to a visit
type TreatmentProgress struct {
	ID            string    `json:"id" db:"id"`
	PatientID     string    `json:"patient_id" db:"patient_id"`
	AppointmentID string    `json:"appointment_id" db:"appointment_id"`
	Date          string    `json:"date" db:"date"`
	Note          string    `json:"note" db:"note"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
