package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/glowpoint/clinic-desk/internal/application/services"
	"github.com/glowpoint/clinic-desk/internal/domain/entities"
)

func TestLowStockMessage(t *testing.T) {
	assert.Equal(t,
		`Stock of product "Gentle Cleanser" is low (3 units)`,
		services.LowStockMessage("Gentle Cleanser", 3))
}

func TestStockAlertService_Derive(t *testing.T) {
	lowProduct := &entities.Product{ID: "pr-1", Name: "Gentle Cleanser", Stock: 3}
	okProduct := &entities.Product{ID: "pr-2", Name: "Sunscreen SPF50", Stock: 40}
	boundaryProduct := &entities.Product{ID: "pr-3", Name: "Serum", Stock: 5}

	t.Run("alerts products at or below the threshold", func(t *testing.T) {
		products := new(MockProductRepository)
		notifications := new(MockStockNotificationRepository)
		service := services.NewStockAlertService(products, notifications, 5)

		products.On("List", mock.Anything).Return([]*entities.Product{lowProduct, okProduct, boundaryProduct}, nil)
		notifications.On("ExistsByMessage", mock.Anything, mock.Anything).Return(false, nil)
		notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *entities.StockNotification) bool {
			return !n.Read && n.Message != ""
		})).Return(nil).Twice()

		created, err := service.Derive(context.Background())

		assert.NoError(t, err)
		assert.Len(t, created, 2)
		assert.Equal(t, `Stock of product "Gentle Cleanser" is low (3 units)`, created[0].Message)
		assert.Equal(t, `Stock of product "Serum" is low (5 units)`, created[1].Message)
		notifications.AssertExpectations(t)
	})

	t.Run("a second pass with unchanged stock creates nothing", func(t *testing.T) {
		products := new(MockProductRepository)
		notifications := new(MockStockNotificationRepository)
		service := services.NewStockAlertService(products, notifications, 5)

		products.On("List", mock.Anything).Return([]*entities.Product{lowProduct}, nil)
		notifications.On("ExistsByMessage", mock.Anything, mock.Anything).Return(true, nil)

		created, err := service.Derive(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, created)
		notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("dedup holds even when the existing alert is read", func(t *testing.T) {
		// ExistsByMessage looks across read and unread rows, so marking all
		// read never resurrects an alert.
		products := new(MockProductRepository)
		notifications := new(MockStockNotificationRepository)
		service := services.NewStockAlertService(products, notifications, 5)

		products.On("List", mock.Anything).Return([]*entities.Product{lowProduct}, nil)
		notifications.On("ExistsByMessage", mock.Anything,
			`Stock of product "Gentle Cleanser" is low (3 units)`).Return(true, nil)

		created, err := service.Derive(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, created)
	})

	t.Run("a changed stock level produces a new message", func(t *testing.T) {
		dropped := &entities.Product{ID: "pr-1", Name: "Gentle Cleanser", Stock: 2}

		products := new(MockProductRepository)
		notifications := new(MockStockNotificationRepository)
		service := services.NewStockAlertService(products, notifications, 5)

		products.On("List", mock.Anything).Return([]*entities.Product{dropped}, nil)
		notifications.On("ExistsByMessage", mock.Anything,
			`Stock of product "Gentle Cleanser" is low (2 units)`).Return(false, nil)
		notifications.On("Create", mock.Anything, mock.Anything).Return(nil)

		created, err := service.Derive(context.Background())

		assert.NoError(t, err)
		assert.Len(t, created, 1)
	})
}
