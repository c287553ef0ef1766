package entities

import (
	"time"
)

// Treatment represents a catalog treatment. The privileged "Initial Skin
// Analysis & Consultation" entry is the only treatment the booking engine
// may auto-insert; its price is typically zero.
type Treatment struct {
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description" db:"description"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	Price           float64   `json:"price" db:"price"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
