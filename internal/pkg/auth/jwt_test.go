package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odemir/studentbook/internal/app/models"
)

func testJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "studentbook.test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       7,
		Email:    "staff@studentbook.local",
		RoleType: models.RoleStaff,
	}
}

func TestGenerateSessionToken(t *testing.T) {
	svc := testJWTService(time.Hour)

	token, expiresIn, err := svc.GenerateSessionToken(testUser(), "sess-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "staff@studentbook.local", claims.Email)
	assert.Equal(t, string(models.RoleStaff), claims.RoleType)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "studentbook.test", claims.Issuer)
}

func TestValidateToken(t *testing.T) {
	t.Run("ExpiredToken", func(t *testing.T) {
		svc := testJWTService(-time.Minute)

		token, _, err := svc.GenerateSessionToken(testUser(), "sess-1")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		svc := testJWTService(time.Hour)
		token, _, err := svc.GenerateSessionToken(testUser(), "sess-1")
		require.NoError(t, err)

		other := NewJWTService(JWTConfig{SecretKey: "other-secret", AccessTokenExp: time.Hour})
		_, err = other.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		svc := testJWTService(time.Hour)
		_, err := svc.ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestValidateAndExtractClaims(t *testing.T) {
	svc := testJWTService(time.Hour)

	t.Run("EmptyToken", func(t *testing.T) {
		_, err := svc.ValidateAndExtractClaims("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("MissingSessionID", func(t *testing.T) {
		token, _, err := svc.GenerateSessionToken(testUser(), "")
		require.NoError(t, err)

		_, err = svc.ValidateAndExtractClaims(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestExtractBearerToken(t *testing.T) {
	t.Run("BearerPrefix", func(t *testing.T) {
		token, err := ExtractBearerToken("Bearer abc.def.ghi")
		require.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", token)
	})

	t.Run("RawToken", func(t *testing.T) {
		token, err := ExtractBearerToken("abc.def.ghi")
		require.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", token)
	})

	t.Run("EmptyHeader", func(t *testing.T) {
		_, err := ExtractBearerToken("")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}
