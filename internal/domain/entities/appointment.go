package entities

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusBooked      AppointmentStatus = "booked"
	AppointmentStatusCompleted   AppointmentStatus = "completed"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
	AppointmentStatusPaid        AppointmentStatus = "paid"
)

// IsTerminal reports whether no further transition is permitted from s
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCancelled || s == AppointmentStatusPaid
}

// CanTransitionTo reports whether the lifecycle permits moving from s to next.
// A rescheduled appointment behaves like a fresh booking, so it may be
// rescheduled again; paid is reachable only from completed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s == next && s != AppointmentStatusRescheduled {
		return false
	}
	switch s {
	case AppointmentStatusBooked, AppointmentStatusRescheduled:
		return next == AppointmentStatusCompleted ||
			next == AppointmentStatusCancelled ||
			next == AppointmentStatusRescheduled
	case AppointmentStatusCompleted:
		return next == AppointmentStatusPaid
	default:
		return false
	}
}

// Appointment represents a scheduled clinic visit. TreatmentIDs is an
// ordered set: no id appears twice. IsInitialSkinAnalysis is true exactly
// when the privileged analysis treatment is part of the set.
type Appointment struct {
	ID                    string            `json:"id" db:"id"`
	PatientID             string            `json:"patient_id" db:"patient_id"`
	DoctorID              string            `json:"doctor_id" db:"doctor_id"`
	TreatmentIDs          []string          `json:"treatment_ids" db:"treatment_ids"`
	Date                  string            `json:"date" db:"date"`
	StartTime             string            `json:"start_time" db:"start_time"`
	EndTime               string            `json:"end_time" db:"end_time"`
	DurationMinutes       int               `json:"duration_minutes" db:"duration_minutes"`
	Status                AppointmentStatus `json:"status" db:"status"`
	IsInitialSkinAnalysis bool              `json:"is_initial_skin_analysis" db:"is_initial_skin_analysis"`
	SkinAnalysisID        *string           `json:"skin_analysis_id" db:"skin_analysis_id"`
	TreatmentProgressID   *string           `json:"treatment_progress_id" db:"treatment_progress_id"`
	CreatedAt             time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at" db:"updated_at"`
}

// HasTreatment reports whether id is part of the appointment's treatment set
func (a *Appointment) HasTreatment(id string) bool {
	for _, t := range a.TreatmentIDs {
		if t == id {
			return true
		}
	}
	return false
}
