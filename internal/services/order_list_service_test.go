// internal/services/order_list_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenielthevis/foodever-backend/internal/models"
)

func TestBuildOrderListViewEmpty(t *testing.T) {
	view := BuildOrderListView(nil)
	require.NotNil(t, view)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0.0, view.Total)
}

func TestBuildOrderListView(t *testing.T) {
	burgerID := uuid.New()
	pastaID := uuid.New()

	burger := models.Product{
		Name:  "Burger",
		Price: 9.50,
		Images: models.ImageList{
			{Key: "products/burger.jpg", URL: "https://cdn.example.com/burger.jpg"},
		},
	}
	burger.ID = burgerID

	pasta := models.Product{Name: "Pasta", Price: 12.00}
	pasta.ID = pastaID

	entries := []models.OrderListEntry{
		{ProductID: burgerID, Quantity: 2, Product: burger},
		{ProductID: pastaID, Quantity: 1, Product: pasta},
	}

	view := BuildOrderListView(entries)
	require.Len(t, view.Items, 2)

	assert.Equal(t, "Burger", view.Items[0].ProductName)
	assert.Equal(t, "https://cdn.example.com/burger.jpg", view.Items[0].ImageURL)
	assert.Equal(t, 19.0, view.Items[0].Subtotal)

	assert.Equal(t, "Pasta", view.Items[1].ProductName)
	assert.Equal(t, "", view.Items[1].ImageURL)
	assert.Equal(t, 12.0, view.Items[1].Subtotal)

	assert.Equal(t, 31.0, view.Total)
}
