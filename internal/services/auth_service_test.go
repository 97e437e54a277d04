package services

import (
	"testing"
	"time"

	"github.com/creatorsuite/suite-backend/internal/config"
	"github.com/creatorsuite/suite-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *AuthService {
	return NewAuthService(nil, &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestGenerateAccessToken_ClaimsRoundTrip(t *testing.T) {
	svc := testService()
	user := &models.User{
		ID:    uuid.New(),
		Email: "writer@example.com",
		Role:  "user",
	}

	signed, err := svc.generateAccessToken("blogsmith", user)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, "writer@example.com", claims["email"])
	assert.Equal(t, "user", claims["role"])
	assert.Equal(t, "blogsmith", claims["app_id"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp.Time, 5*time.Second)
}

func TestGenerateAccessToken_RejectsWrongSecret(t *testing.T) {
	svc := testService()
	user := &models.User{ID: uuid.New(), Email: "a@b.c", Role: "user"}

	signed, err := svc.generateAccessToken("taskhub", user)
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}

func TestHashToken_DeterministicHexDigest(t *testing.T) {
	h1 := hashToken("some-opaque-token")
	h2 := hashToken("some-opaque-token")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, hashToken("another-token"))
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&models.User{Role: "admin"}).IsAdmin())
	assert.False(t, (&models.User{Role: "user"}).IsAdmin())
}
