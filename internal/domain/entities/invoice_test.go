package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glowpoint/clinic-desk/internal/domain/entities"
)

func TestInvoice_Recalculate(t *testing.T) {
	t.Run("rewrites subtotals and total", func(t *testing.T) {
		inv := &entities.Invoice{
			Items: []entities.InvoiceItem{
				{Type: entities.InvoiceItemTreatment, ItemID: "t-1", Quantity: 1, PricePerUnit: 450000},
				{Type: entities.InvoiceItemProduct, ItemID: "pr-1", Quantity: 3, PricePerUnit: 95000},
			},
		}

		total := inv.Recalculate()

		assert.Equal(t, 735000.0, total)
		assert.Equal(t, 450000.0, inv.Items[0].Subtotal)
		assert.Equal(t, 285000.0, inv.Items[1].Subtotal)
		assert.Equal(t, 735000.0, inv.TotalAmount)
	})

	t.Run("overwrites stale subtotals", func(t *testing.T) {
		inv := &entities.Invoice{
			Items: []entities.InvoiceItem{
				{ItemID: "pr-1", Quantity: 2, PricePerUnit: 100000, Subtotal: 999999},
			},
			TotalAmount: 999999,
		}

		assert.Equal(t, 200000.0, inv.Recalculate())
		assert.Equal(t, 200000.0, inv.Items[0].Subtotal)
	})

	t.Run("empty invoice totals zero", func(t *testing.T) {
		inv := &entities.Invoice{}
		assert.Equal(t, 0.0, inv.Recalculate())
	})
}
