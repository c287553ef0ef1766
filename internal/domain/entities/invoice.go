package entities

import (
	"time"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// InvoiceItemType distinguishes treatment lines from product lines
type InvoiceItemType string

const (
	InvoiceItemTreatment InvoiceItemType = "treatment"
	InvoiceItemProduct   InvoiceItemType = "product"
)

// InvoiceItem is one line of an invoice. Name and PricePerUnit are
// snapshotted at build time so later catalog edits cannot change a
// finalized invoice.
type InvoiceItem struct {
	Type         InvoiceItemType `json:"type"`
	ItemID       string          `json:"item_id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	PricePerUnit float64         `json:"price_per_unit"`
	Subtotal     float64         `json:"subtotal"`
}

// Invoice represents a point-of-sale bill. Before finalization it acts as
// the mutable draft; once status is paid its items and totals are frozen.
type Invoice struct {
	ID            string        `json:"id" db:"id"`
	AppointmentID *string       `json:"appointment_id" db:"appointment_id"`
	PatientID     string        `json:"patient_id" db:"patient_id"`
	Date          string        `json:"date" db:"date"`
	Time          string        `json:"time" db:"time"`
	Items         []InvoiceItem `json:"items" db:"items"`
	TotalAmount   float64       `json:"total_amount" db:"total_amount"`
	AmountPaid    float64       `json:"amount_paid" db:"amount_paid"`
	Change        float64       `json:"change_amount" db:"change_amount"`
	PaymentMethod string        `json:"payment_method" db:"payment_method"`
	Status        InvoiceStatus `json:"status" db:"status"`
	CashierName   string        `json:"cashier_name" db:"cashier_name"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

// Recalculate rewrites every item subtotal as quantity x unit price and
// returns the invoice total. Idempotent.
func (i *Invoice) Recalculate() float64 {
	var total float64
	for idx := range i.Items {
		i.Items[idx].Subtotal = float64(i.Items[idx].Quantity) * i.Items[idx].PricePerUnit
		total += i.Items[idx].Subtotal
	}
	i.TotalAmount = total
	return total
}
