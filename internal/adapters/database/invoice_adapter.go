package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/clients/postgres"
	apperrors "github.com/glowpoint/clinic-desk/pkg/errors"
)

var invoiceColumns = []interface{}{
	"id", "appointment_id", "patient_id", "date", "time", "items",
	"total_amount", "amount_paid", "change_amount", "payment_method",
	"status", "cashier_name", "created_at",
}

// InvoiceAdapter implements the InvoiceRepository interface
type InvoiceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewInvoiceAdapter creates a new invoice adapter
func NewInvoiceAdapter(client *postgres.Client) repositories.InvoiceRepository {
	return &InvoiceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func invoiceRecord(invoice *entities.Invoice) (goqu.Record, error) {
	items, err := json.Marshal(invoice.Items)
	if err != nil {
		return nil, err
	}
	return goqu.Record{
		"id":             invoice.ID,
		"appointment_id": nullableString(invoice.AppointmentID),
		"patient_id":     invoice.PatientID,
		"date":           invoice.Date,
		"time":           invoice.Time,
		"items":          items,
		"total_amount":   invoice.TotalAmount,
		"amount_paid":    invoice.AmountPaid,
		"change_amount":  invoice.Change,
		"payment_method": invoice.PaymentMethod,
		"status":         invoice.Status,
		"cashier_name":   invoice.CashierName,
		"created_at":     invoice.CreatedAt,
	}, nil
}

func scanInvoice(scan func(dest ...interface{}) error) (*entities.Invoice, error) {
	invoice := &entities.Invoice{}
	var items []byte
	var appointmentID sql.NullString

	err := scan(
		&invoice.ID,
		&appointmentID,
		&invoice.PatientID,
		&invoice.Date,
		&invoice.Time,
		&items,
		&invoice.TotalAmount,
		&invoice.AmountPaid,
		&invoice.Change,
		&invoice.PaymentMethod,
		&invoice.Status,
		&invoice.CashierName,
		&invoice.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(items) > 0 {
		if err := json.Unmarshal(items, &invoice.Items); err != nil {
			return nil, err
		}
	}
	if appointmentID.Valid {
		invoice.AppointmentID = &appointmentID.String
	}

	return invoice, nil
}

// Create persists an invoice
func (a *InvoiceAdapter) Create(ctx context.Context, invoice *entities.Invoice) error {
	record, err := invoiceRecord(invoice)
	if err != nil {
		return apperrors.NewInternalError("failed to encode invoice", err)
	}

	query, args, err := a.db.Insert("invoices").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("failed to create invoice", err)
	}

	return nil
}

// GetByID retrieves an invoice by ID
func (a *InvoiceAdapter) GetByID(ctx context.Context, id string) (*entities.Invoice, error) {
	query, args, err := a.db.Select(invoiceColumns...).
		From("invoices").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	invoice, err := scanInvoice(row.Scan)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("invoice with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get invoice", err)
	}

	return invoice, nil
}

// List retrieves invoices, newest first
func (a *InvoiceAdapter) List(ctx context.Context, limit, offset int) ([]*entities.Invoice, error) {
	ds := a.db.Select(invoiceColumns...).
		From("invoices").
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
		return nil, apperrors.NewInternalError("failed to list invoices", err)
	}
	defer rows.Close()

	var invoices []*entities.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan invoice", err)
		}
		invoices = append(invoices, invoice)
	}

	return invoices, rows.Err()
}

// FinalizeSale inserts the paid invoice and marks its appointment paid in a
// single transaction. A failure on either statement rolls back both, so an
// invoice never exists without its appointment closed and vice versa.
func (a *InvoiceAdapter) FinalizeSale(ctx context.Context, invoice *entities.Invoice, appointmentID string) error {
	record, err := invoiceRecord(invoice)
	if err != nil {
		return apperrors.NewInternalError("failed to encode invoice", err)
	}

	insertQuery, insertArgs, err := a.db.Insert("invoices").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	updateQuery, updateArgs, err := a.db.Update("appointments").Set(goqu.Record{
		"status":     entities.AppointmentStatusPaid,
		"updated_at": invoice.CreatedAt,
	}).Where(goqu.Ex{"id": appointmentID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewPersistenceError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return apperrors.NewPersistenceError("failed to create invoice", err)
	}

	result, err := tx.ExecContext(ctx, updateQuery, updateArgs...)
	if err != nil {
		return apperrors.NewPersistenceError("failed to close appointment", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", appointmentID))
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewPersistenceError("failed to commit sale", err)
	}

	return nil
}
