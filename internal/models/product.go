// internal/models/product.go
package models

import (
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name         string         `json:"name" gorm:"size:255;not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Category     string         `json:"category" gorm:"size:100;index"`
	Price        float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Images       ImageList      `json:"images" gorm:"type:jsonb"`
	Status       ProductStatus  `json:"status" gorm:"type:varchar(20);default:'available';index"`
	Tags         pq.StringArray `json:"tags" gorm:"type:text[]"`
	SalesCount   int64          `json:"sales_count" gorm:"default:0"`
	Rating       float64        `json:"ratings" gorm:"type:decimal(3,2);default:0"`
	NumOfReviews int64          `json:"num_of_reviews" gorm:"default:0"`

	// Relationships
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}

// FirstImageURL is the display image for list views.
func (p *Product) FirstImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}
