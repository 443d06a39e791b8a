package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/botanicglows/backend/internal/config"
	"github.com/botanicglows/backend/internal/hash"
	"github.com/botanicglows/backend/internal/models"
)

var testSecret = []byte("test-secret")

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
		return nil
	}

	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newJSONContext(t *testing.T, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	e := echo.New()
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func seedAdmin(t *testing.T, db *gorm.DB, email, password, role string, active bool) models.Admin {
	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)

	admin := models.Admin{
		Name:         "Test Admin",
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
		IsActive:     active,
	}
	require.NoError(t, db.Create(&admin).Error)
	if !active {
		// the model's gorm default:true wins over a zero-value false on
		// insert, so force the column to get a deactivated row
		require.NoError(t, db.Model(&admin).Update("is_active", false).Error)
		admin.IsActive = false
	}
	return admin
}

func TestLogin(t *testing.T) {
	db := InitTestDB(t)
	h := &AuthHandler{DB: db, JWTSecret: testSecret}
	seedAdmin(t, db, "owner@botanicglows.com", "secret123", models.RoleSuperAdmin, true)

	t.Run("success", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPost, "/api/admin/auth/login", map[string]string{
			"email":    "Owner@BotanicGlows.com",
			"password": "secret123",
		})
		require.NoError(t, h.Login(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success bool   `json:"success"`
			Token   string `json:"token"`
			Admin   struct {
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"admin"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.True(t, resp.Success)
		require.NotEmpty(t, resp.Token)
		require.Equal(t, "owner@botanicglows.com", resp.Admin.Email)
		require.Equal(t, models.RoleSuperAdmin, resp.Admin.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPost, "/api/admin/auth/login", map[string]string{
			"email":    "owner@botanicglows.com",
			"password": "nope",
		})
		require.NoError(t, h.Login(c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPost, "/api/admin/auth/login", map[string]string{
			"email":    "nobody@botanicglows.com",
			"password": "secret123",
		})
		require.NoError(t, h.Login(c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("deactivated account", func(t *testing.T) {
		seedAdmin(t, db, "gone@botanicglows.com", "secret123", models.RoleStaff, false)
		c, rec := newJSONContext(t, http.MethodPost, "/api/admin/auth/login", map[string]string{
			"email":    "gone@botanicglows.com",
			"password": "secret123",
		})
		require.NoError(t, h.Login(c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRegister(t *testing.T) {
	db := InitTestDB(t)
	h := &AuthHandler{DB: db, JWTSecret: testSecret}

	c, rec := newJSONContext(t, http.MethodPost, "/api/admin/auth/register", map[string]string{
		"name":     "New Staff",
		"email":    "Staff@BotanicGlows.com",
		"password": "secret123",
		"role":     models.RoleStaff,
	})
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var admin models.Admin
	require.NoError(t, db.Where("email = ?", "staff@botanicglows.com").First(&admin).Error)
	require.Equal(t, models.RoleStaff, admin.Role)
	require.True(t, admin.IsActive)
	require.NotEqual(t, "secret123", admin.PasswordHash)

	t.Run("duplicate email", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPost, "/api/admin/auth/register", map[string]string{
			"name":     "Impostor",
			"email":    "staff@botanicglows.com",
			"password": "secret123",
		})
		require.NoError(t, h.Register(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid role", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPost, "/api/admin/auth/register", map[string]string{
			"name":     "Root",
			"email":    "root@botanicglows.com",
			"password": "secret123",
			"role":     "Root",
		})
		require.NoError(t, h.Register(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("short password", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPost, "/api/admin/auth/register", map[string]string{
			"name":     "Shorty",
			"email":    "shorty@botanicglows.com",
			"password": "12345",
		})
		require.NoError(t, h.Register(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestChangePassword(t *testing.T) {
	db := InitTestDB(t)
	h := &AuthHandler{DB: db, JWTSecret: testSecret}
	admin := seedAdmin(t, db, "owner@botanicglows.com", "secret123", models.RoleSuperAdmin, true)

	c, rec := newJSONContext(t, http.MethodPut, "/api/admin/auth/password", map[string]string{
		"currentPassword": "secret123",
		"newPassword":     "evenmoresecret",
	})
	c.Set("admin", &admin)
	require.NoError(t, h.ChangePassword(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Admin
	require.NoError(t, db.First(&got, admin.ID).Error)
	require.True(t, hash.CheckPassword(got.PasswordHash, "evenmoresecret"))

	t.Run("wrong current password", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPut, "/api/admin/auth/password", map[string]string{
			"currentPassword": "secret123",
			"newPassword":     "whatever1",
		})
		c.Set("admin", &got)
		require.NoError(t, h.ChangePassword(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMe(t *testing.T) {
	db := InitTestDB(t)
	h := &AuthHandler{DB: db, JWTSecret: testSecret}
	admin := seedAdmin(t, db, "owner@botanicglows.com", "secret123", models.RoleAdmin, true)

	c, rec := newJSONContext(t, http.MethodGet, "/api/admin/auth/me", nil)
	c.Set("admin", &admin)
	require.NoError(t, h.Me(c))
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("no admin on context", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodGet, "/api/admin/auth/me", nil)
		require.NoError(t, h.Me(c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
