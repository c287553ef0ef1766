package entities

import (
	"time"
)

// StockNotification is a derived low-stock alert. Notifications are keyed by
// message text: the derivation never adds a second row with an identical
// message, read or unread, and never removes one when stock recovers.
type StockNotification struct {
	ID        string    `json:"id" db:"id"`
	Message   string    `json:"message" db:"message"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
