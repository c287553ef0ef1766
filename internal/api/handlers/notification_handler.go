package handlers

import (
	"context"
	"net/http"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
)

// StockAlertService defines the interface for low-stock notifications
type StockAlertService interface {
	Derive(ctx context.Context) ([]*entities.StockNotification, error)
	List(ctx context.Context) ([]*entities.StockNotification, error)
	MarkAllRead(ctx context.Context) error
}

// NotificationHandler handles stock notification requests
type NotificationHandler struct {
	service StockAlertService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(service StockAlertService) *NotificationHandler {
	return &NotificationHandler{
		service: service,
	}
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"count":         len(notifications),
		"unread":        unread,
	})
}

// MarkAllRead handles POST /api/notifications/read
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkAllRead(r.Context()); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Derive handles POST /api/notifications/derive
func (h *NotificationHandler) Derive(w http.ResponseWriter, r *http.Request) {
	created, err := h.service.Derive(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"created": created,
		"count":   len(created),
	})
}
