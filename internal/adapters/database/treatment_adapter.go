package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/clients/postgres"
	apperrors "github.com/glowpoint/clinic-desk/pkg/errors"
)

var treatmentColumns = []interface{}{
	"id", "name", "description", "duration_minutes", "price",
	"created_at", "updated_at",
}

// TreatmentAdapter implements the TreatmentRepository interface
type TreatmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewTreatmentAdapter creates a new treatment adapter
func NewTreatmentAdapter(client *postgres.Client) repositories.TreatmentRepository {
	return &TreatmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func scanTreatment(scan func(dest ...interface{}) error) (*entities.Treatment, error) {
	treatment := &entities.Treatment{}
	err := scan(
		&treatment.ID,
		&treatment.Name,
		&treatment.Description,
		&treatment.DurationMinutes,
		&treatment.Price,
		&treatment.CreatedAt,
		&treatment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return treatment, nil
}

// Create creates a new treatment
func (a *TreatmentAdapter) Create(ctx context.Context, treatment *entities.Treatment) error {
	query, args, err := a.db.Insert("treatments").Rows(goqu.Record{
		"id":               treatment.ID,
		"name":             treatment.Name,
		"description":      treatment.Description,
		"duration_minutes": treatment.DurationMinutes,
		"price":            treatment.Price,
		"created_at":       treatment.CreatedAt,
		"updated_at":       treatment.UpdatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("failed to create treatment", err)
	}

	return nil
}

// GetByID retrieves a treatment by ID
func (a *TreatmentAdapter) GetByID(ctx context.Context, id string) (*entities.Treatment, error) {
	query, args, err := a.db.Select(treatmentColumns...).
		From("treatments").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	treatment, err := scanTreatment(row.Scan)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("treatment with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get treatment", err)
	}

	return treatment, nil
}

// GetByName retrieves a treatment by its exact catalog name
func (a *TreatmentAdapter) GetByName(ctx context.Context, name string) (*entities.Treatment, error) {
	query, args, err := a.db.Select(treatmentColumns...).
		From("treatments").
		Where(goqu.Ex{"name": name}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	treatment, err := scanTreatment(row.Scan)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("treatment named %q not found", name))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get treatment", err)
	}

	return treatment, nil
}

// Update updates a treatment
func (a *TreatmentAdapter) Update(ctx context.Context, treatment *entities.Treatment) error {
	query, args, err := a.db.Update("treatments").Set(goqu.Record{
		"name":             treatment.Name,
		"description":      treatment.Description,
		"duration_minutes": treatment.DurationMinutes,
		"price":            treatment.Price,
		"updated_at":       time.Now(),
	}).Where(goqu.Ex{"id": treatment.ID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewPersistenceError("failed to update treatment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("treatment with id %s not found", treatment.ID))
	}

	return nil
}

// List retrieves all treatments
func (a *TreatmentAdapter) List(ctx context.Context) ([]*entities.Treatment, error) {
	query, args, err := a.db.Select(treatmentColumns...).
		From("treatments").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list treatments", err)
	}
	defer rows.Close()

	var treatments []*entities.Treatment
	for rows.Next() {
		treatment, err := scanTreatment(rows.Scan)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan treatment", err)
		}
		treatments = append(treatments, treatment)
	}

	return treatments, rows.Err()
}
