package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/domain/providers"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
)

// Cache TTLs (in seconds). Catalog data changes rarely, so list TTLs are
// generous; a stale price never leaks into an invoice because items snapshot
// their price at draft time.
const (
	treatmentByIDTTL = 300
	treatmentListTTL = 180
	productByIDTTL   = 60
	productListTTL   = 60
)

func treatmentCacheKey(id string) string {
	return fmt.Sprintf("treatment:%s", id)
}

func treatmentByNameCacheKey(name string) string {
	return fmt.Sprintf("treatment:name:%s", name)
}

const treatmentListCacheKey = "treatments:list"

func productCacheKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

const productListCacheKey = "products:list"

// CachedTreatmentAdapter wraps a TreatmentRepository with caching
type CachedTreatmentAdapter struct {
	adapter repositories.TreatmentRepository
	cache   providers.CacheProvider
}

// NewCachedTreatmentAdapter creates a new cached treatment adapter
func NewCachedTreatmentAdapter(adapter repositories.TreatmentRepository, cache providers.CacheProvider) repositories.TreatmentRepository {
	return &CachedTreatmentAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// GetByID retrieves a treatment by ID with caching
func (a *CachedTreatmentAdapter) GetByID(ctx context.Context, id string) (*entities.Treatment, error) {
	cacheKey := treatmentCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var treatment entities.Treatment
		if err := json.Unmarshal(cached, &treatment); err == nil {
			return &treatment, nil
		}
		log.Printf("Failed to unmarshal cached treatment %s: %v", id, err)
	}

	treatment, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(treatment); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, treatmentByIDTTL); err != nil {
				log.Printf("Failed to cache treatment %s: %v", id, err)
			}
		}
	}()

	return treatment, nil
}

// GetByName retrieves a treatment by name with caching. The booking engine
// resolves the analysis treatment on every booking, so this lookup is hot.
func (a *CachedTreatmentAdapter) GetByName(ctx context.Context, name string) (*entities.Treatment, error) {
	cacheKey := treatmentByNameCacheKey(name)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var treatment entities.Treatment
		if err := json.Unmarshal(cached, &treatment); err == nil {
			return &treatment, nil
		}
		log.Printf("Failed to unmarshal cached treatment %q: %v", name, err)
	}

	treatment, err := a.adapter.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(treatment); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, treatmentByIDTTL); err != nil {
				log.Printf("Failed to cache treatment %q: %v", name, err)
			}
		}
	}()

	return treatment, nil
}

// Create creates a treatment and invalidates the list cache
func (a *CachedTreatmentAdapter) Create(ctx context.Context, treatment *entities.Treatment) error {
	if err := a.adapter.Create(ctx, treatment); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		if err := a.cache.Delete(bgCtx, treatmentListCacheKey); err != nil {
			log.Printf("Failed to invalidate treatment list cache: %v", err)
		}
	}()

	return nil
}

// Update updates a treatment and invalidates its caches
func (a *CachedTreatmentAdapter) Update(ctx context.Context, treatment *entities.Treatment) error {
	if err := a.adapter.Update(ctx, treatment); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		for _, key := range []string{
			treatmentCacheKey(treatment.ID),
			treatmentByNameCacheKey(treatment.Name),
			treatmentListCacheKey,
		} {
			if err := a.cache.Delete(bgCtx, key); err != nil {
				log.Printf("Failed to invalidate treatment cache %s: %v", key, err)
			}
		}
	}()

	return nil
}

// List retrieves all treatments with caching
func (a *CachedTreatmentAdapter) List(ctx context.Context) ([]*entities.Treatment, error) {
	if cached, err := a.cache.Get(ctx, treatmentListCacheKey); err == nil {
		var treatments []*entities.Treatment
		if err := json.Unmarshal(cached, &treatments); err == nil {
			return treatments, nil
		}
		log.Printf("Failed to unmarshal cached treatment list: %v", err)
	}

	treatments, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(treatments); err == nil {
			if err := a.cache.Set(bgCtx, treatmentListCacheKey, data, treatmentListTTL); err != nil {
				log.Printf("Failed to cache treatment list: %v", err)
			}
		}
	}()

	return treatments, nil
}

// CachedProductAdapter wraps a ProductRepository with caching. Product TTLs
// are short because stock moves during the day and the low-stock derivation
// should see fresh counts.
type CachedProductAdapter struct {
	adapter repositories.ProductRepository
	cache   providers.CacheProvider
}

// NewCachedProductAdapter creates a new cached product adapter
func NewCachedProductAdapter(adapter repositories.ProductRepository, cache providers.CacheProvider) repositories.ProductRepository {
	return &CachedProductAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// GetByID retrieves a product by ID with caching
func (a *CachedProductAdapter) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	cacheKey := productCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var product entities.Product
		if err := json.Unmarshal(cached, &product); err == nil {
			return &product, nil
		}
		log.Printf("Failed to unmarshal cached product %s: %v", id, err)
	}

	product, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(product); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, productByIDTTL); err != nil {
				log.Printf("Failed to cache product %s: %v", id, err)
			}
		}
	}()

	return product, nil
}

// Create creates a product and invalidates the list cache
func (a *CachedProductAdapter) Create(ctx context.Context, product *entities.Product) error {
	if err := a.adapter.Create(ctx, product); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		if err := a.cache.Delete(bgCtx, productListCacheKey); err != nil {
			log.Printf("Failed to invalidate product list cache: %v", err)
		}
	}()

	return nil
}

// Update updates a product and invalidates its caches
func (a *CachedProductAdapter) Update(ctx context.Context, product *entities.Product) error {
	if err := a.adapter.Update(ctx, product); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		for _, key := range []string{productCacheKey(product.ID), productListCacheKey} {
			if err := a.cache.Delete(bgCtx, key); err != nil {
				log.Printf("Failed to invalidate product cache %s: %v", key, err)
			}
		}
	}()

	return nil
}

// List retrieves all products with caching
func (a *CachedProductAdapter) List(ctx context.Context) ([]*entities.Product, error) {
	if cached, err := a.cache.Get(ctx, productListCacheKey); err == nil {
		var products []*entities.Product
		if err := json.Unmarshal(cached, &products); err == nil {
			return products, nil
		}
		log.Printf("Failed to unmarshal cached product list: %v", err)
	}

	products, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(products); err == nil {
			if err := a.cache.Set(bgCtx, productListCacheKey, data, productListTTL); err != nil {
				log.Printf("Failed to cache product list: %v", err)
			}
		}
	}()

	return products, nil
}
