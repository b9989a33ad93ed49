// internal/services/order_list_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thenielthevis/foodever-backend/internal/apperrors"
	"github.com/thenielthevis/foodever-backend/internal/models"
	"github.com/thenielthevis/foodever-backend/internal/utils"
)

// OrderListService tracks each user's pre-checkout selections. Entries for
// the same (user, product) merge into one line; the merge is an atomic upsert
// against the unique index, never a read-then-write.
type OrderListService struct {
	db *gorm.DB
}

type AddToOrderListRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// OrderListItem is an entry joined with current product data for display.
type OrderListItem struct {
	EntryID     uuid.UUID `json:"entry_id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	ImageURL    string    `json:"image_url"`
	UnitPrice   float64   `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	Subtotal    float64   `json:"subtotal"`
}

type OrderListView struct {
	Items []OrderListItem `json:"items"`
	Total float64         `json:"total"`
}

func NewOrderListService(db *gorm.DB) *OrderListService {
	return &OrderListService{db: db}
}

// Add merges the quantity into the user's existing line for the product, or
// creates one. Concurrent adds for the same (user, product) accumulate
// instead of duplicating lines.
func (s *OrderListService) Add(userID uuid.UUID, req *AddToOrderListRequest) (*models.OrderListEntry, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewValidation("quantity must be a positive integer")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	entry := models.OrderListEntry{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("order_list_entries.quantity + EXCLUDED.quantity"),
			"updated_at": gorm.Expr("NOW()"),
		}),
	}).Create(&entry).Error
	if err != nil {
		return nil, fmt.Errorf("failed to add to order list: %w", err)
	}

	// Reload to pick up the merged quantity
	var merged models.OrderListEntry
	if err := s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&merged).Error; err != nil {
		return nil, fmt.Errorf("failed to reload entry: %w", err)
	}

	return &merged, nil
}

func (s *OrderListService) UpdateQuantity(entryID, userID uuid.UUID, req *UpdateQuantityRequest) (*models.OrderListEntry, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewValidation("quantity must be a positive integer")
	}

	var entry models.OrderListEntry
	if err := s.db.First(&entry, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("order list entry")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if entry.UserID != userID {
		return nil, apperrors.NewAuthorization("not allowed to modify this entry")
	}

	if err := s.db.Model(&entry).Update("quantity", req.Quantity).Error; err != nil {
		return nil, fmt.Errorf("failed to update quantity: %w", err)
	}

	return &entry, nil
}

// DeleteEntry removes one line. Deleting an entry that is already gone is
// not an error.
func (s *OrderListService) DeleteEntry(entryID, userID uuid.UUID) error {
	var entry models.OrderListEntry
	if err := s.db.First(&entry, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("database error: %w", err)
	}

	if entry.UserID != userID {
		return apperrors.NewAuthorization("not allowed to delete this entry")
	}

	if err := s.db.Unscoped().Delete(&entry).Error; err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	return nil
}

// DeleteByProductIDs clears the user's lines for the given products,
// typically right after checkout. Idempotent.
func (s *OrderListService) DeleteByProductIDs(userID uuid.UUID, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}

	if err := s.db.Unscoped().
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Delete(&models.OrderListEntry{}).Error; err != nil {
		return fmt.Errorf("failed to clear order list entries: %w", err)
	}

	return nil
}

// ListForUser returns the user's entries joined with current product data
// plus line subtotals and the grand total.
func (s *OrderListService) ListForUser(userID uuid.UUID) (*OrderListView, error) {
	var entries []models.OrderListEntry
	if err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch order list: %w", err)
	}

	return BuildOrderListView(entries), nil
}

// BuildOrderListView assembles the display view from loaded entries.
func BuildOrderListView(entries []models.OrderListEntry) *OrderListView {
	view := &OrderListView{Items: make([]OrderListItem, 0, len(entries))}

	for _, entry := range entries {
		subtotal := entry.Product.Price * float64(entry.Quantity)
		view.Items = append(view.Items, OrderListItem{
			EntryID:     entry.ID,
			ProductID:   entry.ProductID,
			ProductName: entry.Product.Name,
			ImageURL:    entry.Product.FirstImageURL(),
			UnitPrice:   entry.Product.Price,
			Quantity:    entry.Quantity,
			Subtotal:    subtotal,
		})
		view.Total += subtotal
	}

	return view
}
