package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/clients/postgres"
	apperrors "github.com/glowpoint/clinic-desk/pkg/errors"
)

var doctorColumns = []interface{}{
	"id", "name", "role", "schedule", "created_at", "updated_at",
}

// DoctorAdapter implements the DoctorRepository interface
type DoctorAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDoctorAdapter creates a new doctor adapter
func NewDoctorAdapter(client *postgres.Client) repositories.DoctorRepository {
	return &DoctorAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func scanDoctor(scan func(dest ...interface{}) error) (*entities.Doctor, error) {
	doctor := &entities.Doctor{}
	var schedule []byte

	err := scan(
		&doctor.ID,
		&doctor.Name,
		&doctor.Role,
		&schedule,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(schedule) > 0 {
		if err := json.Unmarshal(schedule, &doctor.Schedule); err != nil {
			return nil, err
		}
	}

	return doctor, nil
}

// Create creates a new doctor
func (a *DoctorAdapter) Create(ctx context.Context, doctor *entities.Doctor) error {
	schedule, err := json.Marshal(doctor.Schedule)
	if err != nil {
		return apperrors.NewInternalError("failed to encode schedule", err)
	}

	query, args, err := a.db.Insert("doctors").Rows(goqu.Record{
		"id":         doctor.ID,
		"name":       doctor.Name,
		"role":       doctor.Role,
		"schedule":   schedule,
		"created_at": doctor.CreatedAt,
		"updated_at": doctor.UpdatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("failed to create doctor", err)
	}

	return nil
}

// GetByID retrieves a doctor by ID
func (a *DoctorAdapter) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	query, args, err := a.db.Select(doctorColumns...).
		From("doctors").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	doctor, err := scanDoctor(row.Scan)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("doctor with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get doctor", err)
	}

	return doctor, nil
}

// Update updates a doctor
func (a *DoctorAdapter) Update(ctx context.Context, doctor *entities.Doctor) error {
	schedule, err := json.Marshal(doctor.Schedule)
	if err != nil {
		return apperrors.NewInternalError("failed to encode schedule", err)
	}

	query, args, err := a.db.Update("doctors").Set(goqu.Record{
		"name":       doctor.Name,
		"role":       doctor.Role,
		"schedule":   schedule,
		"updated_at": time.Now(),
	}).Where(goqu.Ex{"id": doctor.ID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewPersistenceError("failed to update doctor", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("doctor with id %s not found", doctor.ID))
	}

	return nil
}

// List retrieves all doctors
func (a *DoctorAdapter) List(ctx context.Context) ([]*entities.Doctor, error) {
	query, args, err := a.db.Select(doctorColumns...).
		From("doctors").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list doctors", err)
	}
	defer rows.Close()

	var doctors []*entities.Doctor
	for rows.Next() {
		doctor, err := scanDoctor(rows.Scan)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan doctor", err)
		}
		doctors = append(doctors, doctor)
	}

	return doctors, rows.Err()
}
