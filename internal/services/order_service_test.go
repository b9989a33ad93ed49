// internal/services/order_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenielthevis/foodever-backend/internal/models"
)

func TestBuildOrderViewResolvesLiveProduct(t *testing.T) {
	productID := uuid.New()

	product := models.Product{
		Name:  "Ramen Deluxe",
		Price: 14.00,
		Images: models.ImageList{
			{Key: "products/ramen.jpg", URL: "https://cdn.example.com/ramen.jpg"},
		},
	}
	product.ID = productID

	order := models.Order{
		Status:        models.OrderStatusPending,
		TotalAmount:   24.00,
		PaymentMethod: "cash",
		Items: []models.OrderItem{
			{
				ProductID:   productID,
				ProductName: "Ramen",
				UnitPrice:   12.00,
				Quantity:    2,
				Product:     product,
			},
		},
	}
	order.ID = uuid.New()

	view := BuildOrderView(&order)
	assert.Equal(t, order.ID, view.OrderID)
	assert.Equal(t, models.OrderStatusPending, view.Status)
	assert.Equal(t, 24.0, view.TotalAmount)
	require.Len(t, view.Items, 1)

	// Name, current price and image come from the live catalog row; the
	// stored unit price stays the checkout-time value.
	line := view.Items[0]
	assert.Equal(t, "Ramen Deluxe", line.ProductName)
	assert.Equal(t, 14.0, line.CurrentPrice)
	assert.Equal(t, "https://cdn.example.com/ramen.jpg", line.ImageURL)
	assert.Equal(t, 12.0, line.UnitPrice)
	assert.Equal(t, 2, line.Quantity)
}

func TestBuildOrderViewFallsBackToStoredSnapshot(t *testing.T) {
	order := models.Order{
		Status:      models.OrderStatusCompleted,
		TotalAmount: 9.50,
		Items: []models.OrderItem{
			{
				ProductID:   uuid.New(),
				ProductName: "Discontinued Burger",
				UnitPrice:   9.50,
				Quantity:    1,
				// Product not preloaded: catalog row was deleted
			},
		},
	}

	view := BuildOrderView(&order)
	require.Len(t, view.Items, 1)

	line := view.Items[0]
	assert.Equal(t, "Discontinued Burger", line.ProductName)
	assert.Equal(t, 9.5, line.UnitPrice)
	assert.Equal(t, 0.0, line.CurrentPrice)
	assert.Equal(t, "", line.ImageURL)
}
