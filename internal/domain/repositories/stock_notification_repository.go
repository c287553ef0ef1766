package repositories

import (
	"context"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
)

// StockNotificationRepository defines the interface for low-stock alerts
type StockNotificationRepository interface {
	// Create persists a notification
	Create(ctx context.Context, notification *entities.StockNotification) error

	// ExistsByMessage reports whether any notification, read or unread,
	// carries exactly this message
	ExistsByMessage(ctx context.Context, message string) (bool, error)

	// List retrieves notifications, newest first
	List(ctx context.Context) ([]*entities.StockNotification, error)

	// MarkAllRead marks every notification as read
	MarkAllRead(ctx context.Context) error
}
