package entities

import (
	"time"
)

// Product represents a retail product sold at checkout. Stock is decremented
// by external inventory processes, never by the billing engine.
type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Stock       int       `json:"stock" db:"stock"`
	Price       float64   `json:"price" db:"price"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
