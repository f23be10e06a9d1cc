package service

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/appdotbuilder/gameva-shop/internal/models"
)

func newTokenService(t *testing.T) *TokenService {
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.RefreshToken{}))

	return &TokenService{
		DB:            db,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
}

func TestRotateToken(t *testing.T) {
	ts := newTokenService(t)

	refresh, err := SignRefreshToken(7, models.RoleCustomer, ts.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(ts.DB, refresh, 7, models.RoleCustomer))

	newAccess, newRefresh, err := ts.RotateToken(refresh)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)
	require.NotEmpty(t, newRefresh)
	require.NotEqual(t, refresh, newRefresh)

	token, err := jwt.Parse(newAccess, func(t *jwt.Token) (interface{}, error) {
		return ts.JWTSecret, nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, float64(7), claims["sub"])
	require.Equal(t, models.RoleCustomer, claims["role"])

	// the rotated refresh token is persisted and usable
	_, err = ValidateRefresh(newRefresh, ts.RefreshSecret, ts.DB)
	require.NoError(t, err)
}

func TestRotateTokenRejectsRevoked(t *testing.T) {
	ts := newTokenService(t)

	refresh, err := SignRefreshToken(7, models.RoleCustomer, ts.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(ts.DB, refresh, 7, models.RoleCustomer))
	require.NoError(t, ts.RevokeRefresh(refresh))

	_, _, err = ts.RotateToken(refresh)
	require.Error(t, err)
}

func TestValidateRefreshRejectsAccessToken(t *testing.T) {
	ts := newTokenService(t)

	access, err := SignAccessToken(7, models.RoleCustomer, ts.RefreshSecret)
	require.NoError(t, err)

	_, err = ValidateRefresh(access, ts.RefreshSecret, ts.DB)
	require.Error(t, err)
}
