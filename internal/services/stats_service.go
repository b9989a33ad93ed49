// internal/services/stats_service.go
package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thenielthevis/foodever-backend/internal/models"
)

// StatsService is the read-only reporting side over the order collection.
// It never mutates anything.
type StatsService struct {
	db *gorm.DB
}

type StatusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

type MonthlyTopProduct struct {
	Month       string    `json:"month"` // e.g. "January 2024"
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
}

type OrderStatusRow struct {
	OrderID      uuid.UUID          `json:"order_id"`
	Status       models.OrderStatus `json:"status"`
	ProductNames []string           `json:"product_names"`
}

type DashboardStats struct {
	TotalUsers        int64         `json:"total_users"`
	ActiveUsers       int64         `json:"active_users"`
	TotalProducts     int64         `json:"total_products"`
	TotalOrders       int64         `json:"total_orders"`
	OrdersThisMonth   int64         `json:"orders_this_month"`
	TotalRevenue      float64       `json:"total_revenue"`
	MonthlyRevenue    float64       `json:"monthly_revenue"`
	OrdersByStatus    []StatusCount `json:"orders_by_status"`
	TotalReviews      int64         `json:"total_reviews"`
	UnreadNotifCount  int64         `json:"unread_notification_count"`
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// CountByStatus tallies all orders by status, sorted by status value. The
// sum of the counts equals the total order count at call time.
func (s *StatsService) CountByStatus() ([]StatusCount, error) {
	var counts []StatusCount
	if err := s.db.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Order("status ASC").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}

	return counts, nil
}

// MonthlyTopProduct filters orders by the optional creation-date window,
// groups them by calendar month, and returns the product with the highest
// summed quantity for each month.
func (s *StatsService) MonthlyTopProduct(start, end *time.Time) ([]MonthlyTopProduct, error) {
	query := s.db.Preload("Items")
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}

	var orders []models.Order
	if err := query.Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return TopProductPerMonth(orders), nil
}

// TopProductPerMonth computes the winner per calendar month. Tie-break is
// deterministic: highest summed quantity wins, ties go to the lowest
// product id.
func TopProductPerMonth(orders []models.Order) []MonthlyTopProduct {
	type monthKey struct {
		year  int
		month time.Month
	}
	type productTotal struct {
		name     string
		quantity int
	}

	totals := make(map[monthKey]map[uuid.UUID]*productTotal)

	for _, order := range orders {
		key := monthKey{year: order.CreatedAt.Year(), month: order.CreatedAt.Month()}
		if totals[key] == nil {
			totals[key] = make(map[uuid.UUID]*productTotal)
		}
		for _, item := range order.Items {
			pt, ok := totals[key][item.ProductID]
			if !ok {
				pt = &productTotal{name: item.ProductName}
				totals[key][item.ProductID] = pt
			}
			pt.quantity += item.Quantity
		}
	}

	months := make([]monthKey, 0, len(totals))
	for key := range totals {
		months = append(months, key)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].year != months[j].year {
			return months[i].year < months[j].year
		}
		return months[i].month < months[j].month
	})

	results := make([]MonthlyTopProduct, 0, len(months))
	for _, key := range months {
		var winnerID uuid.UUID
		var winner *productTotal
		for productID, pt := range totals[key] {
			if winner == nil ||
				pt.quantity > winner.quantity ||
				(pt.quantity == winner.quantity && productID.String() < winnerID.String()) {
				winnerID = productID
				winner = pt
			}
		}

		label := time.Date(key.year, key.month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
		results = append(results, MonthlyTopProduct{
			Month:       label,
			ProductID:   winnerID,
			ProductName: winner.name,
			Quantity:    winner.quantity,
		})
	}

	return results
}

// StatusesWithProductNames is the denormalized admin table view: one row per
// order with its status and expanded product names.
func (s *StatsService) StatusesWithProductNames() ([]OrderStatusRow, error) {
	var orders []models.Order
	if err := s.db.Preload("Items").
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	rows := make([]OrderStatusRow, 0, len(orders))
	for _, order := range orders {
		names := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			names = append(names, item.ProductName)
		}
		rows = append(rows, OrderStatusRow{
			OrderID:      order.ID,
			Status:       order.Status,
			ProductNames: names,
		})
	}

	return rows, nil
}

// GetDashboardStats aggregates the headline numbers for the admin dashboard.
func (s *StatsService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// User statistics
	s.db.Model(&models.User{}).Count(&stats.TotalUsers)
	s.db.Model(&models.User{}).Where("status = ?", models.UserStatusActive).Count(&stats.ActiveUsers)

	// Catalog statistics
	s.db.Model(&models.Product{}).Where("status = ?", models.ProductStatusAvailable).Count(&stats.TotalProducts)
	s.db.Model(&models.Review{}).Count(&stats.TotalReviews)

	// Order statistics
	s.db.Model(&models.Order{}).Count(&stats.TotalOrders)
	s.db.Model(&models.Order{}).Where("created_at >= ?", monthStart).Count(&stats.OrdersThisMonth)

	// Revenue counts completed orders only
	s.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.TotalRevenue)

	s.db.Model(&models.Order{}).
		Where("status = ? AND created_at >= ?", models.OrderStatusCompleted, monthStart).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.MonthlyRevenue)

	s.db.Model(&models.AdminNotification{}).
		Where("status = ?", "unread").Count(&stats.UnreadNotifCount)

	byStatus, err := s.CountByStatus()
	if err != nil {
		return nil, err
	}
	stats.OrdersByStatus = byStatus

	return stats, nil
}
