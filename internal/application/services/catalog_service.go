package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
	apperrors "github.com/glowpoint/clinic-desk/pkg/errors"
)

// CatalogService manages the treatment and product catalogs and the doctor
// roster. Catalog edits never touch existing invoices: item prices are
// snapshotted at draft time.
type CatalogService struct {
	treatmentRepo repositories.TreatmentRepository
	productRepo   repositories.ProductRepository
	doctorRepo    repositories.DoctorRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	treatmentRepo repositories.TreatmentRepository,
	productRepo repositories.ProductRepository,
	doctorRepo repositories.DoctorRepository,
) *CatalogService {
	return &CatalogService{
		treatmentRepo: treatmentRepo,
		productRepo:   productRepo,
		doctorRepo:    doctorRepo,
	}
}

// CreateTreatment adds a treatment to the catalog
func (s *CatalogService) CreateTreatment(ctx context.Context, treatment *entities.Treatment) (*entities.Treatment, error) {
	if strings.TrimSpace(treatment.Name) == "" {
		return nil, apperrors.NewValidationError("treatment name is required")
	}
	if treatment.DurationMinutes <= 0 {
		return nil, apperrors.NewValidationError("treatment duration must be positive")
	}
	if treatment.Price < 0 {
		return nil, apperrors.NewValidationError("treatment price cannot be negative")
	}

	now := time.Now()
	treatment.ID = uuid.New().String()
	treatment.CreatedAt = now
	treatment.UpdatedAt = now

	if err := s.treatmentRepo.Create(ctx, treatment); err != nil {
		return nil, err
	}
	return treatment, nil
}

// GetTreatment retrieves a treatment by ID
func (s *CatalogService) GetTreatment(ctx context.Context, id string) (*entities.Treatment, error) {
	return s.treatmentRepo.GetByID(ctx, id)
}

// UpdateTreatment rewrites a treatment's catalog fields
func (s *CatalogService) UpdateTreatment(ctx context.Context, treatment *entities.Treatment) (*entities.Treatment, error) {
	if treatment.DurationMinutes <= 0 {
		return nil, apperrors.NewValidationError("treatment duration must be positive")
	}
	if treatment.Price < 0 {
		return nil, apperrors.NewValidationError("treatment price cannot be negative")
	}
	if err := s.treatmentRepo.Update(ctx, treatment); err != nil {
		return nil, err
	}
	return treatment, nil
}

// ListTreatments retrieves all treatments
func (s *CatalogService) ListTreatments(ctx context.Context) ([]*entities.Treatment, error) {
	return s.treatmentRepo.List(ctx)
}

// CreateProduct adds a product to the catalog
func (s *CatalogService) CreateProduct(ctx context.Context, product *entities.Product) (*entities.Product, error) {
	if strings.TrimSpace(product.Name) == "" {
		return nil, apperrors.NewValidationError("product name is required")
	}
	if product.Stock < 0 {
		return nil, apperrors.NewValidationError("product stock cannot be negative")
	}
	if product.Price < 0 {
		return nil, apperrors.NewValidationError("product price cannot be negative")
	}

	now := time.Now()
	product.ID = uuid.New().String()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*entities.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// UpdateProduct rewrites a product's catalog fields, including stock counts
// recorded by the inventory process
func (s *CatalogService) UpdateProduct(ctx context.Context, product *entities.Product) (*entities.Product, error) {
	if product.Stock < 0 {
		return nil, apperrors.NewValidationError("product stock cannot be negative")
	}
	if product.Price < 0 {
		return nil, apperrors.NewValidationError("product price cannot be negative")
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts retrieves all products
func (s *CatalogService) ListProducts(ctx context.Context) ([]*entities.Product, error) {
	return s.productRepo.List(ctx)
}

// CreateDoctor adds a doctor to the roster
func (s *CatalogService) CreateDoctor(ctx context.Context, doctor *entities.Doctor) (*entities.Doctor, error) {
	if strings.TrimSpace(doctor.Name) == "" {
		return nil, apperrors.NewValidationError("doctor name is required")
	}
	if err := validateSchedule(doctor.Schedule); err != nil {
		return nil, err
	}

	now := time.Now()
	doctor.ID = uuid.New().String()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// GetDoctor retrieves a doctor by ID
func (s *CatalogService) GetDoctor(ctx context.Context, id string) (*entities.Doctor, error) {
	return s.doctorRepo.GetByID(ctx, id)
}

// UpdateDoctor rewrites a doctor's roster fields
func (s *CatalogService) UpdateDoctor(ctx context.Context, doctor *entities.Doctor) (*entities.Doctor, error) {
	if err := validateSchedule(doctor.Schedule); err != nil {
		return nil, err
	}
	if err := s.doctorRepo.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// ListDoctors retrieves all doctors
func (s *CatalogService) ListDoctors(ctx context.Context) ([]*entities.Doctor, error) {
	return s.doctorRepo.List(ctx)
}

func validateSchedule(schedule []entities.ScheduleEntry) error {
	for _, entry := range schedule {
		if !entry.Day.Valid() {
			return apperrors.NewValidationError("unknown schedule day: " + string(entry.Day))
		}
	}
	return nil
}
