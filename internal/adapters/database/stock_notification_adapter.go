package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/clients/postgres"
	apperrors "github.com/glowpoint/clinic-desk/pkg/errors"
)

// StockNotificationAdapter implements the StockNotificationRepository interface
type StockNotificationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewStockNotificationAdapter creates a new stock notification adapter
func NewStockNotificationAdapter(client *postgres.Client) repositories.StockNotificationRepository {
	return &StockNotificationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a notification
func (a *StockNotificationAdapter) Create(ctx context.Context, notification *entities.StockNotification) error {
	query, args, err := a.db.Insert("stock_notifications").Rows(goqu.Record{
		"id":         notification.ID,
		"message":    notification.Message,
		"read":       notification.Read,
		"created_at": notification.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("failed to create notification", err)
	}

	return nil
}

// ExistsByMessage reports whether any notification carries exactly this
// message, read or unread
func (a *StockNotificationAdapter) ExistsByMessage(ctx context.Context, message string) (bool, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("stock_notifications").
		Where(goqu.Ex{"message": message}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to count notifications", err)
	}

	return count > 0, nil
}

// List retrieves notifications, newest first
func (a *StockNotificationAdapter) List(ctx context.Context) ([]*entities.StockNotification, error) {
	query, args, err := a.db.Select("id", "message", "read", "created_at").
		From("stock_notifications").
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list notifications", err)
	}
	defer rows.Close()

	var notifications []*entities.StockNotification
	for rows.Next() {
		notification := &entities.StockNotification{}
		err := rows.Scan(
			&notification.ID,
			&notification.Message,
			&notification.Read,
			&notification.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan notification", err)
		}
		notifications = append(notifications, notification)
	}

	return notifications, rows.Err()
}

// MarkAllRead marks every notification as read
func (a *StockNotificationAdapter) MarkAllRead(ctx context.Context) error {
	query, args, err := a.db.Update("stock_notifications").Set(goqu.Record{
		"read": true,
	}).Where(goqu.Ex{"read": false}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("failed to mark notifications read", err)
	}

	return nil
}
