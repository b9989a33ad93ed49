// internal/services/identity_service.go
package services

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v4"

	"github.com/thenielthevis/foodever-backend/internal/apperrors"
)

// ExternalIdentity is what the identity provider yields for a verified
// credential. UID is the stable external subject mirrored onto the local
// User record.
type ExternalIdentity struct {
	UID       string `json:"uid"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// IdentityProvider verifies bearer credentials issued by an external identity
// service and mirrors user provisioning into it. Implementations wrap their
// failures in apperrors.DependencyError.
type IdentityProvider interface {
	VerifyCredential(ctx context.Context, credential string) (*ExternalIdentity, error)
	CreateUser(ctx context.Context, identity *ExternalIdentity) error
	DeleteUser(ctx context.Context, uid string) error
}

type providerClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// TokenIdentityProvider verifies HS256 tokens signed with a shared provider
// secret. It stands in for a hosted identity service; provisioning calls are
// no-ops because the token issuer owns the account records.
type TokenIdentityProvider struct {
	secret []byte
}

func NewTokenIdentityProvider(secret string) *TokenIdentityProvider {
	return &TokenIdentityProvider{secret: []byte(secret)}
}

func (p *TokenIdentityProvider) VerifyCredential(ctx context.Context, credential string) (*ExternalIdentity, error) {
	token, err := jwt.ParseWithClaims(credential, &providerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})

	if err != nil {
		return nil, apperrors.NewDependency("identity provider", err)
	}

	claims, ok := token.Claims.(*providerClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, apperrors.NewDependency("identity provider", errors.New("invalid credential"))
	}

	return &ExternalIdentity{
		UID:       claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		AvatarURL: claims.Picture,
	}, nil
}

func (p *TokenIdentityProvider) CreateUser(ctx context.Context, identity *ExternalIdentity) error {
	return nil
}

func (p *TokenIdentityProvider) DeleteUser(ctx context.Context, uid string) error {
	return nil
}
