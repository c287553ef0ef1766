package search

import (
	"context"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
	tsclient "github.com/glowpoint/clinic-desk/internal/infrastructure/clients/typesense"
	apperrors "github.com/glowpoint/clinic-desk/pkg/errors"
)

const collectionName = "patients"

// TypesenseAdapter implements the front-desk patient lookup on Typesense.
// Only the fields the desk searches by are indexed; full records always come
// from Postgres.
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements PatientSearchRepository
var _ repositories.PatientSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the patients collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "full_name", Type: "string"},
			{Name: "phone", Type: "string"},
			{Name: "email", Type: "string"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return apperrors.NewExternalError("failed to create typesense collection", err)
	}

	return nil
}

// Index adds or refreshes a patient in the search index
func (a *TypesenseAdapter) Index(ctx context.Context, patient *entities.Patient) error {
	document := map[string]interface{}{
		"id":         patient.ID,
		"full_name":  patient.FullName,
		"phone":      patient.Phone,
		"email":      patient.Email,
		"created_at": patient.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return apperrors.NewExternalError("failed to index patient", err)
	}

	return nil
}

// Delete removes a patient from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return apperrors.NewExternalError("failed to delete patient from index", err)
	}
	return nil
}

// Search finds patients by name, phone or email. Results carry only the
// indexed fields; callers fetch full records by ID when they need them.
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]*entities.Patient, error) {
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("full_name,phone,email"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to search patients", err)
	}

	patients := []*entities.Patient{}
	if result.Hits == nil {
		return patients, nil
	}

	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document

		patient := &entities.Patient{}
		if id, ok := doc["id"].(string); ok {
			patient.ID = id
		}
		if name, ok := doc["full_name"].(string); ok {
			patient.FullName = name
		}
		if phone, ok := doc["phone"].(string); ok {
			patient.Phone = phone
		}
		if email, ok := doc["email"].(string); ok {
			patient.Email = email
		}

		patients = append(patients, patient)
	}

	return patients, nil
}
