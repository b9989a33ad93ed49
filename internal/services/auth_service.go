// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thenielthevis/foodever-backend/internal/apperrors"
	"github.com/thenielthevis/foodever-backend/internal/config"
	"github.com/thenielthevis/foodever-backend/internal/models"
	"github.com/thenielthevis/foodever-backend/internal/utils"
)

type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	identity IdentityProvider
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username    string                 `json:"username" validate:"required,username"`
	Email       string                 `json:"email" validate:"required,email"`
	Password    string                 `json:"password" validate:"required,strong_password"`
	ProfileData map[string]interface{} `json:"profile_data,omitempty"`
}

type ProviderSignInRequest struct {
	Credential string `json:"credential" validate:"required"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // in seconds
}

func NewAuthService(db *gorm.DB, cfg *config.Config, identity IdentityProvider) *AuthService {
	return &AuthService{
		db:       db,
		cfg:      cfg,
		identity: identity,
	}
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewValidation("validation failed: %v", err)
	}

	// Check if user already exists
	var existingUser models.User
	if err := s.db.Where("email = ? OR username = ?", req.Email, req.Username).First(&existingUser).Error; err == nil {
		if existingUser.Email == req.Email {
			return nil, apperrors.NewConflict("user with this email already exists")
		}
		return nil, apperrors.NewConflict("username already taken")
	}

	// Create new user
	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		Role:        models.UserRoleUser,
		Status:      models.UserStatusActive,
		ProfileData: models.JSONB(req.ProfileData),
	}

	// Set password
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Mirror the account into the identity provider first; a provider outage
	// fails registration outright rather than leaving a half-provisioned user.
	externalUID := uuid.New().String()
	if err := s.identity.CreateUser(ctx, &ExternalIdentity{
		UID:   externalUID,
		Email: req.Email,
		Name:  req.Username,
	}); err != nil {
		return nil, err
	}
	user.ExternalUID = externalUID

	// Save user
	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(user)
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewValidation("validation failed: %v", err)
	}

	// Find user by email
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAuthorization("invalid email or password")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if user.Status != models.UserStatusActive {
		return nil, apperrors.NewAuthorization("account is not active")
	}

	// Verify password
	if err := user.CheckPassword(req.Password); err != nil {
		return nil, apperrors.NewAuthorization("invalid email or password")
	}

	// Update last login time
	now := time.Now()
	user.LastLoginAt = &now
	s.db.Save(&user)

	return s.issueTokens(&user)
}

// ProviderSignIn verifies an external identity credential and signs in the
// matching local user, provisioning one on first sign-in.
func (s *AuthService) ProviderSignIn(ctx context.Context, req *ProviderSignInRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewValidation("validation failed: %v", err)
	}

	identity, err := s.identity.VerifyCredential(ctx, req.Credential)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.db.Where("external_uid = ?", identity.UID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// First sign-in through the provider; email collisions mean the
		// account was registered locally and must be linked explicitly.
		var existing models.User
		if lookupErr := s.db.Where("email = ?", identity.Email).First(&existing).Error; lookupErr == nil {
			return nil, apperrors.NewConflict("email already registered with password sign-in")
		}

		username := identity.Name
		if username == "" {
			username = "user_" + identity.UID[:8]
		}

		user = models.User{
			Username:    username,
			Email:       identity.Email,
			ExternalUID: identity.UID,
			Role:        models.UserRoleUser,
			Status:      models.UserStatusActive,
			AvatarURL:   identity.AvatarURL,
		}
		if createErr := s.db.Create(&user).Error; createErr != nil {
			return nil, fmt.Errorf("failed to create user: %w", createErr)
		}
	} else if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if user.Status != models.UserStatusActive {
		return nil, apperrors.NewAuthorization("account is not active")
	}

	now := time.Now()
	user.LastLoginAt = &now
	s.db.Save(&user)

	return s.issueTokens(&user)
}

func (s *AuthService) RefreshToken(refreshToken string) (*AuthResponse, error) {
	// Validate refresh token
	userIDStr, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.NewAuthorization("invalid refresh token")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, apperrors.NewAuthorization("invalid user ID in token")
	}

	// Find user
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Check user status
	if user.Status != models.UserStatusActive {
		return nil, apperrors.NewAuthorization("account is not active")
	}

	return s.issueTokens(&user)
}

func (s *AuthService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *AuthService) issueTokens(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(
		user.ID,
		user.Username,
		string(user.Role),
		s.cfg.JWT.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}
