// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thenielthevis/foodever-backend/internal/apperrors"
	"github.com/thenielthevis/foodever-backend/internal/models"
	"github.com/thenielthevis/foodever-backend/internal/utils"
)

// ReviewService maintains the review collection of a product together with
// the denormalized rating/num_of_reviews projection. Every mutation runs in
// one transaction holding a row lock on the product, so concurrent reviewers
// cannot produce stale aggregates.
type ReviewService struct {
	db *gorm.DB
}

type UpsertReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// UpsertReview creates the user's review on the product or replaces it in
// place, then recomputes the product aggregates.
func (s *ReviewService) UpsertReview(productID, userID uuid.UUID, req *UpsertReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewValidation("rating must be an integer between 1 and 5")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var review models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("product")
			}
			return fmt.Errorf("database error: %w", err)
		}

		err := tx.Where("product_id = ? AND user_id = ?", productID, userID).First(&review).Error
		switch {
		case err == nil:
			review.Rating = req.Rating
			review.Comment = req.Comment
			review.Username = user.Username
			if err := tx.Save(&review).Error; err != nil {
				return fmt.Errorf("failed to update review: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			review = models.Review{
				ProductID: productID,
				UserID:    userID,
				Username:  user.Username,
				Rating:    req.Rating,
				Comment:   req.Comment,
			}
			if err := tx.Create(&review).Error; err != nil {
				// The (product_id, user_id) unique index catches inserts that
				// raced past the lookup.
				return apperrors.NewConflict("review already exists for this user and product")
			}
		default:
			return fmt.Errorf("database error: %w", err)
		}

		return s.recomputeAggregates(tx, productID)
	})
	if err != nil {
		return nil, err
	}

	return &review, nil
}

func (s *ReviewService) DeleteReview(productID, reviewID uuid.UUID, actorID uuid.UUID, actorIsAdmin bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("product")
			}
			return fmt.Errorf("database error: %w", err)
		}

		var review models.Review
		if err := tx.Where("id = ? AND product_id = ?", reviewID, productID).First(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("review")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !actorIsAdmin && review.UserID != actorID {
			return apperrors.NewAuthorization("not allowed to delete this review")
		}

		if err := tx.Unscoped().Delete(&review).Error; err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}

		return s.recomputeAggregates(tx, productID)
	})
}

// GetReview returns the single review by that user, or NotFoundError when
// none exists. Callers use the miss to branch between create and edit flows.
func (s *ReviewService) GetReview(productID, userID uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := s.db.Where("product_id = ? AND user_id = ?", productID, userID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("review")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &review, nil
}

func (s *ReviewService) ListForProduct(productID uuid.UUID) ([]models.Review, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var reviews []models.Review
	if err := s.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}

// recomputeAggregates reloads the review ratings and writes the projection
// back onto the product. Must run inside the transaction holding the product
// row lock.
func (s *ReviewService) recomputeAggregates(tx *gorm.DB, productID uuid.UUID) error {
	var ratings []int
	if err := tx.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Pluck("rating", &ratings).Error; err != nil {
		return fmt.Errorf("failed to load ratings: %w", err)
	}

	mean, count := ReviewAggregate(ratings)

	if err := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating":         mean,
			"num_of_reviews": count,
		}).Error; err != nil {
		return fmt.Errorf("failed to update product aggregates: %w", err)
	}

	return nil
}

// ReviewAggregate computes the mean rating and count for a review list.
// An empty list yields 0, never NaN.
func ReviewAggregate(ratings []int) (float64, int64) {
	if len(ratings) == 0 {
		return 0, 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	mean := float64(sum) / float64(len(ratings))
	// Two decimal places to match the column precision
	mean = math.Round(mean*100) / 100

	return mean, int64(len(ratings))
}
