package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/observability"
)

// StockAlertService derives low-stock notifications from the product
// catalog. The alert text doubles as the dedup key: one message, one
// notification, forever. Restocking never retracts an alert, it only
// changes the message the next time stock dips.
type StockAlertService struct {
	productRepo      repositories.ProductRepository
	notificationRepo repositories.StockNotificationRepository
	threshold        int
}

// NewStockAlertService creates a new stock alert service
func NewStockAlertService(
	productRepo repositories.ProductRepository,
	notificationRepo repositories.StockNotificationRepository,
	threshold int,
) *StockAlertService {
	return &StockAlertService{
		productRepo:      productRepo,
		notificationRepo: notificationRepo,
		threshold:        threshold,
	}
}

// LowStockMessage renders the alert text for a product
func LowStockMessage(name string, stock int) string {
	return fmt.Sprintf(`Stock of product "%s" is low (%d units)`, name, stock)
}

// Derive scans the catalog and records an alert for every product at or
// below the threshold whose exact message has not been recorded before.
// Returns the notifications created by this pass.
func (s *StockAlertService) Derive(ctx context.Context) ([]*entities.StockNotification, error) {
	logger := observability.LoggerFromContext(ctx)

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var created []*entities.StockNotification
	for _, product := range products {
		if product.Stock > s.threshold {
			continue
		}

		message := LowStockMessage(product.Name, product.Stock)
		exists, err := s.notificationRepo.ExistsByMessage(ctx, message)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		notification := &entities.StockNotification{
			ID:        uuid.New().String(),
			Message:   message,
			Read:      false,
			CreatedAt: time.Now(),
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			return nil, err
		}
		created = append(created, notification)

		logger.Info().
			Str("product_id", product.ID).
			Int("stock", product.Stock).
			Msg("low stock alert")
	}

	return created, nil
}

// List retrieves all notifications, newest first
func (s *StockAlertService) List(ctx context.Context) ([]*entities.StockNotification, error) {
	return s.notificationRepo.List(ctx)
}

// MarkAllRead marks every notification as read
func (s *StockAlertService) MarkAllRead(ctx context.Context) error {
	return s.notificationRepo.MarkAllRead(ctx)
}
