// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thenielthevis/foodever-backend/internal/apperrors"
	"github.com/thenielthevis/foodever-backend/internal/models"
	"github.com/thenielthevis/foodever-backend/internal/utils"
)

type ProductService struct {
	db      *gorm.DB
	storage *StorageService
}

type CreateProductRequest struct {
	Name        string                `json:"name" validate:"required,min=2,max=255"`
	Description string                `json:"description" validate:"required,min=10"`
	Category    string                `json:"category" validate:"required"`
	Price       float64               `json:"price" validate:"required,gte=0"`
	Images      []models.ProductImage `json:"images,omitempty"`
	Tags        []string              `json:"tags,omitempty"`
}

type UpdateProductRequest struct {
	Name        string                `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description string                `json:"description,omitempty" validate:"omitempty,min=10"`
	Category    string                `json:"category,omitempty"`
	Price       *float64              `json:"price,omitempty" validate:"omitempty,gte=0"`
	Images      []models.ProductImage `json:"images,omitempty"`
	Tags        []string              `json:"tags,omitempty"`
	Status      models.ProductStatus  `json:"status,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	Status   *models.ProductStatus `json:"status,omitempty"`
	PriceMin *float64              `json:"price_min,omitempty"`
	PriceMax *float64              `json:"price_max,omitempty"`
	Tags     []string              `json:"tags,omitempty"`
}

func NewProductService(db *gorm.DB, storage *StorageService) *ProductService {
	return &ProductService{
		db:      db,
		storage: storage,
	}
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewValidation("validation failed: %v", err)
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Images:      models.ImageList(req.Images),
		Tags:        req.Tags,
		Status:      models.ProductStatusAvailable,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Reviews", func(db *gorm.DB) *gorm.DB {
		return db.Order("reviews.created_at DESC")
	}).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &product, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewValidation("validation failed: %v", err)
	}

	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Prepare updates
	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Images != nil {
		updates["images"] = models.ImageList(req.Images)
	}
	if req.Tags != nil {
		updates["tags"] = req.Tags
	}
	if req.Status != "" {
		if req.Status != models.ProductStatusAvailable && req.Status != models.ProductStatusUnavailable {
			return nil, apperrors.NewValidation("invalid product status: %s", req.Status)
		}
		updates["status"] = req.Status
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.GetProduct(id)
}

func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("product")
		}
		return fmt.Errorf("database error: %w", err)
	}

	// Soft delete; order items keep their captured name and price
	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	// Best effort cleanup of stored images
	for _, image := range product.Images {
		if image.Key != "" {
			s.storage.DeleteFile(image.Key)
		}
	}

	return nil
}

func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	// Apply filters
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	} else {
		// Default to available products only
		query = query.Where("status = ?", models.ProductStatusAvailable)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}

	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}

	if len(params.Tags) > 0 {
		query = query.Where("tags && ?", params.Tags)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply sorting
	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "sales_count", "rating"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)

	// Apply pagination
	query = utils.ApplyPagination(query, params.PaginationParams)

	// Execute query
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) GetPopularProducts(limit int) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("status = ?", models.ProductStatusAvailable).
		Order("sales_count DESC, rating DESC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch popular products: %w", err)
	}

	return products, nil
}

// AttachImages appends uploaded image references to a product, preserving
// upload order.
func (s *ProductService) AttachImages(id uuid.UUID, uploads []UploadResult) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	images := product.Images
	for _, upload := range uploads {
		images = append(images, models.ProductImage{Key: upload.Key, URL: upload.URL})
	}

	if err := s.db.Model(&product).Update("images", images).Error; err != nil {
		return nil, fmt.Errorf("failed to attach images: %w", err)
	}

	return s.GetProduct(id)
}
