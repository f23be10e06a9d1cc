package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/appdotbuilder/gameva-shop/internal/models"
)

type testEnv struct {
	T   *testing.T
	E   *echo.Echo
	DB  *gorm.DB
	A   *AuthHandler
	P   *ProductHandler
	C   *CartHandler
	Cat *CategoryHandler
	Ad  *AddressHandler
	O   *OrderHandler
	D   *DashboardHandler

	JWTSecret, RefreshSecret []byte
}

func initTestDB(t *testing.T) *gorm.DB {
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.RefreshToken{},
	)
	require.NoError(t, err)

	return db
}

// newTestEnv builds handlers over a throwaway sqlite database. Kafka and
// elasticsearch are left nil: publishing and indexing are both skipped then.
func newTestEnv(t *testing.T) *testEnv {
	db := initTestDB(t)

	jwtSecret := []byte("test-jwt-secret")
	refreshSecret := []byte("test-refresh-secret")

	env := &testEnv{
		T:             t,
		E:             echo.New(),
		DB:            db,
		JWTSecret:     jwtSecret,
		RefreshSecret: refreshSecret,
	}

	env.A = &AuthHandler{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}
	env.P = &ProductHandler{DB: db, JWTSecret: jwtSecret}
	env.C = &CartHandler{DB: db, JWTSecret: jwtSecret}
	env.Cat = &CategoryHandler{DB: db}
	env.Ad = &AddressHandler{DB: db, JWTSecret: jwtSecret}
	env.O = &OrderHandler{DB: db, JWTSecret: jwtSecret}
	env.D = &DashboardHandler{DB: db}

	return env
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// login registers and authenticates a user with the given role, returning the
// access cookie user-scoped handlers need.
func login(t *testing.T, env *testEnv, email, role string) *http.Cookie {
	register := map[string]string{
		"email":      email,
		"password":   "password123",
		"first_name": "Test",
		"last_name":  "User",
		"role":       role,
	}
	recRegister, cRegister := env.doJSONRequest(http.MethodPost, "/api/v1/register", register)
	require.NoError(t, env.A.Register(cRegister))
	require.Equal(t, http.StatusCreated, recRegister.Code)

	credentials := map[string]string{
		"email":    email,
		"password": "password123",
	}
	recLogin, cLogin := env.doJSONRequest(http.MethodPost, "/api/v1/login", credentials)
	require.NoError(t, env.A.Login(cLogin))
	require.Equal(t, http.StatusOK, recLogin.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(recLogin.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)

	return &http.Cookie{Name: "accessToken", Value: resp.AccessToken, Path: "/"}
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	return he.Code
}
