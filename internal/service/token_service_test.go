package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/progress-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/progress-dashboard-api/pkg/errors"
)

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims models.JWTClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestTokenServiceValidateToken(t *testing.T) {
	svc := NewTokenService("secret")
	raw := signToken(t, "secret", jwt.SigningMethodHS256, models.JWTClaims{
		UserID: "student-1",
		Email:  "ada@example.com",
		Gender: "female",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := svc.ValidateToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "student-1", claims.UserID)
	assert.Equal(t, "female", claims.Gender)
}

func TestTokenServiceFallsBackToSubject(t *testing.T) {
	svc := NewTokenService("secret")
	raw := signToken(t, "secret", jwt.SigningMethodHS256, models.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "student-9"},
	})

	claims, err := svc.ValidateToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "student-9", claims.UserID)
}

func TestTokenServiceRejectsBadTokens(t *testing.T) {
	svc := NewTokenService("secret")

	cases := map[string]string{
		"wrong secret": signToken(t, "other", jwt.SigningMethodHS256, models.JWTClaims{UserID: "s"}),
		"wrong method": signToken(t, "secret", jwt.SigningMethodHS384, models.JWTClaims{UserID: "s"}),
		"expired": signToken(t, "secret", jwt.SigningMethodHS256, models.JWTClaims{UserID: "s", RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}}),
		"no subject": signToken(t, "secret", jwt.SigningMethodHS256, models.JWTClaims{}),
		"garbage":    "not-a-token",
	}
	for name, raw := range cases {
		_, err := svc.ValidateToken(raw)
		require.Error(t, err, name)
		assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status, name)
	}
}
