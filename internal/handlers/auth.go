package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/botanicglows/backend/internal/hash"
	"github.com/botanicglows/backend/internal/middleware"
	"github.com/botanicglows/backend/internal/models"
)

const tokenTTL = 7 * 24 * time.Hour

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret []byte
}

func (h *AuthHandler) signToken(adminID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": adminID,
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(h.JWTSecret)
}

type adminPayload struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "email and password are required")
	}

	var admin models.Admin
	if err := h.DB.Where("email = ?", strings.ToLower(req.Email)).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, http.StatusUnauthorized, "invalid email or password")
		}
		return serviceError(c, err)
	}
	if !admin.IsActive {
		return respondError(c, http.StatusUnauthorized, "account is deactivated")
	}
	if !hash.CheckPassword(admin.PasswordHash, req.Password) {
		return respondError(c, http.StatusUnauthorized, "invalid email or password")
	}

	now := time.Now()
	if err := h.DB.Model(&admin).Update("last_login", &now).Error; err != nil {
		return serviceError(c, err)
	}

	token, err := h.signToken(admin.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"token":   token,
		"admin": adminPayload{
			ID: admin.ID, Name: admin.Name, Email: admin.Email, Role: admin.Role,
		},
	})
}

// Register creates a new back-office account. The route is gated to
// SuperAdmin in the router.
func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" {
		return respondError(c, http.StatusBadRequest, "name and email are required")
	}
	if len(req.Password) < 6 {
		return respondError(c, http.StatusBadRequest, "password must be at least 6 characters")
	}
	if req.Role == "" {
		req.Role = models.RoleAdmin
	}
	if !middleware.IsAuthorized(req.Role, models.RoleSuperAdmin, models.RoleAdmin, models.RoleStaff) {
		return respondError(c, http.StatusBadRequest, "invalid role")
	}

	email := strings.ToLower(req.Email)
	var existing models.Admin
	if err := h.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return respondError(c, http.StatusBadRequest, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return serviceError(c, err)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	admin := models.Admin{
		Name:         req.Name,
		Email:        email,
		PasswordHash: pwHash,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := h.DB.Create(&admin).Error; err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "admin created successfully",
		"admin": adminPayload{
			ID: admin.ID, Name: admin.Name, Email: admin.Email, Role: admin.Role,
		},
	})
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	admin := middleware.AdminFromContext(c)
	if admin == nil {
		return respondError(c, http.StatusUnauthorized, "not authorized")
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.CurrentPassword == "" {
		return respondError(c, http.StatusBadRequest, "current password is required")
	}
	if len(req.NewPassword) < 6 {
		return respondError(c, http.StatusBadRequest, "new password must be at least 6 characters")
	}
	if !hash.CheckPassword(admin.PasswordHash, req.CurrentPassword) {
		return respondError(c, http.StatusBadRequest, "current password is incorrect")
	}

	pwHash, err := hash.HashPassword(req.NewPassword)
	if err != nil {
		return serviceError(c, err)
	}
	if err := h.DB.Model(admin).Update("password_hash", pwHash).Error; err != nil {
		return serviceError(c, err)
	}

	token, err := h.signToken(admin.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "password changed successfully",
		"token":   token,
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	admin := middleware.AdminFromContext(c)
	if admin == nil {
		return respondError(c, http.StatusUnauthorized, "not authorized")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"admin": adminPayload{
			ID: admin.ID, Name: admin.Name, Email: admin.Email,
			Role: admin.Role, LastLogin: admin.LastLogin,
		},
	})
}
