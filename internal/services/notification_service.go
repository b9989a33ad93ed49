// internal/services/notification_service.go
package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/thenielthevis/foodever-backend/internal/models"
)

// NotificationService records admin-facing notifications for order lifecycle
// events. Writes happen outside the order transaction; failures are logged
// and never propagated to the caller.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) NotifyOrderPlaced(order *models.Order) {
	notification := &models.AdminNotification{
		Type:                "order_placed",
		Title:               "New Order",
		Message:             fmt.Sprintf("Order %s placed for %.2f via %s", order.ID, order.TotalAmount, order.PaymentMethod),
		Priority:            "medium",
		RelatedResourceType: "order",
		RelatedResourceID:   &order.ID,
	}

	if err := s.db.Create(notification).Error; err != nil {
		logrus.WithError(err).Error("Failed to create order notification")
	}
}

func (s *NotificationService) NotifyOrderStatusChanged(order *models.Order, previous models.OrderStatus) {
	notification := &models.AdminNotification{
		Type:                "order_status_changed",
		Title:               "Order Status Updated",
		Message:             fmt.Sprintf("Order %s moved from %s to %s", order.ID, previous, order.Status),
		Priority:            "low",
		RelatedResourceType: "order",
		RelatedResourceID:   &order.ID,
	}

	if err := s.db.Create(notification).Error; err != nil {
		logrus.WithError(err).Error("Failed to create status notification")
	}
}

func (s *NotificationService) ListUnread(limit int) ([]models.AdminNotification, error) {
	var notifications []models.AdminNotification
	if err := s.db.Where("status = ?", "unread").
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(id string) error {
	result := s.db.Model(&models.AdminNotification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  "read",
			"read_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	return nil
}
