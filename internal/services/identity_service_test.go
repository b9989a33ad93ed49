// internal/services/identity_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenielthevis/foodever-backend/internal/apperrors"
)

func signProviderToken(t *testing.T, secret string, claims providerClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyCredential(t *testing.T) {
	provider := NewTokenIdentityProvider("test-secret")

	credential := signProviderToken(t, "test-secret", providerClaims{
		Email:   "diner@example.com",
		Name:    "Diner",
		Picture: "https://cdn.example.com/avatar.png",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ext-uid-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	identity, err := provider.VerifyCredential(context.Background(), credential)
	require.NoError(t, err)
	assert.Equal(t, "ext-uid-1", identity.UID)
	assert.Equal(t, "diner@example.com", identity.Email)
	assert.Equal(t, "Diner", identity.Name)
	assert.Equal(t, "https://cdn.example.com/avatar.png", identity.AvatarURL)
}

func TestVerifyCredentialWrongSecret(t *testing.T) {
	provider := NewTokenIdentityProvider("test-secret")

	credential := signProviderToken(t, "other-secret", providerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ext-uid-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := provider.VerifyCredential(context.Background(), credential)
	require.Error(t, err)
	assert.True(t, apperrors.IsDependency(err))
}

func TestVerifyCredentialMissingSubject(t *testing.T) {
	provider := NewTokenIdentityProvider("test-secret")

	credential := signProviderToken(t, "test-secret", providerClaims{
		Email: "diner@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := provider.VerifyCredential(context.Background(), credential)
	require.Error(t, err)
	assert.True(t, apperrors.IsDependency(err))
}

func TestVerifyCredentialExpired(t *testing.T) {
	provider := NewTokenIdentityProvider("test-secret")

	credential := signProviderToken(t, "test-secret", providerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ext-uid-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := provider.VerifyCredential(context.Background(), credential)
	require.Error(t, err)
	assert.True(t, apperrors.IsDependency(err))
}

func TestVerifyCredentialGarbage(t *testing.T) {
	provider := NewTokenIdentityProvider("test-secret")

	_, err := provider.VerifyCredential(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.True(t, apperrors.IsDependency(err))
}
