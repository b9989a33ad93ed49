// internal/models/order_list.go
package models

import (
	"github.com/google/uuid"
)

// OrderListEntry is a pending, pre-checkout selection. The unique index on
// (user_id, product_id) keeps one line per product per user; concurrent adds
// merge into it via an atomic upsert in the service layer.
type OrderListEntry struct {
	BaseModel
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_order_list_user_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_order_list_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null"`

	// Relationships
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
