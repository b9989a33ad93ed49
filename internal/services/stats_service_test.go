// internal/services/stats_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenielthevis/foodever-backend/internal/models"
)

func makeOrder(createdAt time.Time, items ...models.OrderItem) models.Order {
	order := models.Order{Items: items}
	order.CreatedAt = createdAt
	return order
}

func TestTopProductPerMonthEmpty(t *testing.T) {
	assert.Empty(t, TopProductPerMonth(nil))
	assert.Empty(t, TopProductPerMonth([]models.Order{}))
}

func TestTopProductPerMonthSingleMonth(t *testing.T) {
	burger := uuid.New()
	pasta := uuid.New()
	jan := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

	orders := []models.Order{
		makeOrder(jan,
			models.OrderItem{ProductID: burger, ProductName: "Burger", Quantity: 2},
			models.OrderItem{ProductID: pasta, ProductName: "Pasta", Quantity: 1},
		),
		makeOrder(jan.AddDate(0, 0, 5),
			models.OrderItem{ProductID: pasta, ProductName: "Pasta", Quantity: 4},
		),
	}

	results := TopProductPerMonth(orders)
	require.Len(t, results, 1)
	assert.Equal(t, "January 2024", results[0].Month)
	assert.Equal(t, pasta, results[0].ProductID)
	assert.Equal(t, "Pasta", results[0].ProductName)
	assert.Equal(t, 5, results[0].Quantity)
}

func TestTopProductPerMonthChronologicalOrder(t *testing.T) {
	burger := uuid.New()

	orders := []models.Order{
		makeOrder(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			models.OrderItem{ProductID: burger, ProductName: "Burger", Quantity: 1}),
		makeOrder(time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
			models.OrderItem{ProductID: burger, ProductName: "Burger", Quantity: 3}),
		makeOrder(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			models.OrderItem{ProductID: burger, ProductName: "Burger", Quantity: 2}),
	}

	results := TopProductPerMonth(orders)
	require.Len(t, results, 3)
	assert.Equal(t, "December 2023", results[0].Month)
	assert.Equal(t, "January 2024", results[1].Month)
	assert.Equal(t, "March 2024", results[2].Month)
}

func TestTopProductPerMonthTieBreak(t *testing.T) {
	low := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	high := uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")
	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	orders := []models.Order{
		makeOrder(jan,
			models.OrderItem{ProductID: high, ProductName: "Pizza", Quantity: 3},
			models.OrderItem{ProductID: low, ProductName: "Ramen", Quantity: 3},
		),
	}

	// Equal quantities: the lower product id wins, regardless of item order
	results := TopProductPerMonth(orders)
	require.Len(t, results, 1)
	assert.Equal(t, low, results[0].ProductID)
	assert.Equal(t, "Ramen", results[0].ProductName)
	assert.Equal(t, 3, results[0].Quantity)
}

func TestTopProductPerMonthAccumulatesAcrossOrders(t *testing.T) {
	burger := uuid.New()
	pasta := uuid.New()
	feb := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	orders := []models.Order{
		makeOrder(feb, models.OrderItem{ProductID: burger, ProductName: "Burger", Quantity: 2}),
		makeOrder(feb.AddDate(0, 0, 10), models.OrderItem{ProductID: burger, ProductName: "Burger", Quantity: 2}),
		makeOrder(feb.AddDate(0, 0, 20), models.OrderItem{ProductID: pasta, ProductName: "Pasta", Quantity: 3}),
	}

	results := TopProductPerMonth(orders)
	require.Len(t, results, 1)
	assert.Equal(t, burger, results[0].ProductID)
	assert.Equal(t, 4, results[0].Quantity)
}
