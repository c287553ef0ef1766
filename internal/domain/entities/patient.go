package entities

import (
	"time"
)

// Patient represents a registered clinic patient. HasInitialSkinAnalysis
// flips false to true at most once, when an appointment carrying the
// analysis treatment reaches completed; it never reverts.
type Patient struct {
	ID                       string    `json:"id" db:"id"`
	FullName                 string    `json:"full_name" db:"full_name"`
	Phone                    string    `json:"phone" db:"phone"`
	Email                    string    `json:"email" db:"email"`
	BirthDate                string    `json:"birth_date" db:"birth_date"`
	Gender                   string    `json:"gender" db:"gender"`
	IdentityNumber           string    `json:"identity_number" db:"identity_number"`
	Address                  string    `json:"address" db:"address"`
	AllergyHistory           string    `json:"allergy_history" db:"allergy_history"`
	MedicalConditions        string    `json:"medical_conditions" db:"medical_conditions"`
	Medications              string    `json:"medications" db:"medications"`
	TreatmentHistory         string    `json:"treatment_history" db:"treatment_history"`
	MainComplaint            string    `json:"main_complaint" db:"main_complaint"`
	EmergencyContactName     string    `json:"emergency_contact_name" db:"emergency_contact_name"`
	EmergencyContactRelation string    `json:"emergency_contact_relation" db:"emergency_contact_relation"`
	EmergencyContactPhone    string    `json:"emergency_contact_phone" db:"emergency_contact_phone"`
	CommunicationPreferences []string  `json:"communication_preferences" db:"communication_preferences"`
	DataConsent              bool      `json:"data_consent" db:"data_consent"`
	HasInitialSkinAnalysis   bool      `json:"has_initial_skin_analysis" db:"has_initial_skin_analysis"`
	CreatedAt                time.Time `json:"created_at" db:"created_at"`
	UpdatedAt                time.Time `json:"updated_at" db:"updated_at"`
}
