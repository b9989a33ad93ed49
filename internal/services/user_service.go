// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thenielthevis/foodever-backend/internal/apperrors"
	"github.com/thenielthevis/foodever-backend/internal/models"
	"github.com/thenielthevis/foodever-backend/internal/utils"
)

type UserService struct {
	db       *gorm.DB
	identity IdentityProvider
	storage  *StorageService
}

type UpdateProfileRequest struct {
	Username    string                 `json:"username,omitempty" validate:"omitempty,username"`
	ProfileData map[string]interface{} `json:"profile_data,omitempty"`
}

type AdminUpdateUserStatusRequest struct {
	Status models.UserStatus `json:"status" validate:"required,oneof=active inactive"`
}

func NewUserService(db *gorm.DB, identity IdentityProvider, storage *StorageService) *UserService {
	return &UserService{
		db:       db,
		identity: identity,
		storage:  storage,
	}
}

func (s *UserService) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewValidation("validation failed: %v", err)
	}

	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Username != "" && req.Username != user.Username {
		var count int64
		s.db.Model(&models.User{}).Where("username = ? AND id <> ?", req.Username, userID).Count(&count)
		if count > 0 {
			return nil, apperrors.NewConflict("username already taken")
		}
		updates["username"] = req.Username
	}
	if req.ProfileData != nil {
		updates["profile_data"] = models.JSONB(req.ProfileData)
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return s.GetUser(userID)
}

func (s *UserService) UploadAvatar(userID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if err := s.storage.ValidateImage(file); err != nil {
		return nil, err
	}

	result, err := s.storage.UploadFile(file, header, s.storage.GetDefaultUploadOptions("avatars"))
	if err != nil {
		return nil, err
	}

	previousKey := user.AvatarKey
	updates := map[string]interface{}{
		"avatar_url": result.URL,
		"avatar_key": result.Key,
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	// Best effort cleanup of the replaced image
	if previousKey != "" {
		s.storage.DeleteFile(previousKey)
	}

	return s.GetUser(userID)
}

// Admin operations

func (s *UserService) ListUsers(params utils.PaginationParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "username", "email", "role", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

func (s *UserService) UpdateUserStatus(id uuid.UUID, req *AdminUpdateUserStatusRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewValidation("validation failed: %v", err)
	}

	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(user).Update("status", req.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	return s.GetUser(id)
}

// DeleteUser is the explicit admin deletion path: the mirrored identity
// provider account goes first, then the local record is soft-deleted.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}

	if user.ExternalUID != "" {
		if err := s.identity.DeleteUser(ctx, user.ExternalUID); err != nil {
			return err
		}
	}

	if err := s.db.Delete(user).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
