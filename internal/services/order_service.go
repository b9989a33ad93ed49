// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thenielthevis/foodever-backend/internal/apperrors"
	"github.com/thenielthevis/foodever-backend/internal/models"
	"github.com/thenielthevis/foodever-backend/internal/utils"
)

// OrderService is a pure record-keeper for orders: it never touches stock
// and never triggers payment. Placement computes the total from current
// product prices and clears the ordered lines from the order list in the
// same transaction.
type OrderService struct {
	db            *gorm.DB
	orderList     *OrderListService
	notifications *NotificationService
}

type OrderLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
}

type PlaceOrderRequest struct {
	Items         []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string             `json:"payment_method" validate:"required,max=50"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// OrderLineView is a stored line item resolved against current product data
// at read time.
type OrderLineView struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	CurrentPrice float64   `json:"current_price"`
	ImageURL     string    `json:"image_url"`
	UnitPrice    float64   `json:"unit_price"`
	Quantity     int       `json:"quantity"`
}

type OrderView struct {
	OrderID       uuid.UUID          `json:"order_id"`
	Status        models.OrderStatus `json:"status"`
	TotalAmount   float64            `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []OrderLineView    `json:"items"`
}

func NewOrderService(db *gorm.DB, orderList *OrderListService, notifications *NotificationService) *OrderService {
	return &OrderService{
		db:            db,
		orderList:     orderList,
		notifications: notifications,
	}
}

// PlaceOrder creates an order in status pending. The total is always
// computed from current product prices, never taken from the client. Order
// creation and order-list cleanup share one transaction.
func (s *OrderService) PlaceOrder(userID uuid.UUID, req *PlaceOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewValidation("order must contain at least one line item with a positive quantity")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		productIDs := make([]uuid.UUID, 0, len(req.Items))
		for _, line := range req.Items {
			productIDs = append(productIDs, line.ProductID)
		}

		// Lock the referenced products so prices are stable for the total
		var products []models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", productIDs).
			Find(&products).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}

		productsByID := make(map[uuid.UUID]models.Product, len(products))
		for _, p := range products {
			productsByID[p.ID] = p
		}

		var total float64
		items := make([]models.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			product, ok := productsByID[line.ProductID]
			if !ok {
				return apperrors.NewValidation("line item references unknown product %s", line.ProductID)
			}

			total += product.Price * float64(line.Quantity)
			items = append(items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    line.Quantity,
			})
		}

		order = &models.Order{
			UserID:        userID,
			TotalAmount:   total,
			PaymentMethod: req.PaymentMethod,
			Status:        models.OrderStatusPending,
			Items:         items,
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		// Track popularity for the catalog
		for _, line := range req.Items {
			if err := tx.Model(&models.Product{}).Where("id = ?", line.ProductID).
				UpdateColumn("sales_count", gorm.Expr("sales_count + ?", line.Quantity)).Error; err != nil {
				return fmt.Errorf("failed to update sales count: %w", err)
			}
		}

		// Clear just-ordered lines from the order list inside the same
		// transaction so checkout never leaves stale cart lines behind
		if err := tx.Unscoped().
			Where("user_id = ? AND product_id IN ?", userID, productIDs).
			Delete(&models.OrderListEntry{}).Error; err != nil {
			return fmt.Errorf("failed to clear order list: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifications.NotifyOrderPlaced(order)

	// Return with resolved product details
	s.db.Preload("Items").Preload("Items.Product").First(order, order.ID)

	return order, nil
}

// GetUserOrders returns the user's orders newest first, line items resolved
// against current product data.
func (s *OrderService) GetUserOrders(userID uuid.UUID) ([]OrderView, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var orders []models.Order
	if err := s.db.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, BuildOrderView(&orders[i]))
	}

	return views, nil
}

// BuildOrderView resolves an order's stored lines against the preloaded
// current product rows.
func BuildOrderView(order *models.Order) OrderView {
	view := OrderView{
		OrderID:       order.ID,
		Status:        order.Status,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		CreatedAt:     order.CreatedAt,
		Items:         make([]OrderLineView, 0, len(order.Items)),
	}

	for _, item := range order.Items {
		line := OrderLineView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		}
		// Prefer live catalog data when the product still exists
		if item.Product.ID != uuid.Nil {
			line.ProductName = item.Product.Name
			line.CurrentPrice = item.Product.Price
			line.ImageURL = item.Product.FirstImageURL()
		}
		view.Items = append(view.Items, line)
	}

	return view
}

// UpdateOrderStatus validates and applies a status transition. The
// transition table is enforced here, not in the admin UI: completed and
// cancelled orders reject any further transition.
func (s *OrderService) UpdateOrderStatus(orderID uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewValidation("status is required")
	}

	if !req.Status.IsValid() {
		return nil, apperrors.NewValidation("invalid order status: %s", req.Status)
	}

	var order models.Order
	var previous models.OrderStatus
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("order")
			}
			return fmt.Errorf("database error: %w", err)
		}

		previous = order.Status
		if order.Status.IsTerminal() {
			return apperrors.NewValidation("order status %s is terminal", order.Status)
		}
		if !order.Status.CanTransitionTo(req.Status) {
			return apperrors.NewValidation("cannot transition order from %s to %s", order.Status, req.Status)
		}

		if err := tx.Model(&order).Update("status", req.Status).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		order.Status = req.Status

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifications.NotifyOrderStatusChanged(&order, previous)

	s.db.Preload("Items").Preload("Items.Product").First(&order, orderID)

	return &order, nil
}
