// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

// Order is created at checkout. Line items are immutable once persisted;
// only Status moves afterwards, along the transition table in common.go.
type Order struct {
	BaseModel
	UserID        uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	TotalAmount   float64     `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	PaymentMethod string      `json:"payment_method" gorm:"size:50;not null"`
	Status        OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	// Relationships
	User  User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem captures product name and unit price at checkout time so the
// order record stays meaningful when the catalog changes.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	ProductName string    `json:"product_name" gorm:"size:255;not null"`
	UnitPrice   float64   `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Quantity    int       `json:"quantity" gorm:"not null"`

	// Relationships
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
