package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/botanicglows/backend/internal/models"
)

const adminContextKey = "admin"

type Auth struct {
	DB        *gorm.DB
	JWTSecret []byte
}

// deny answers with the same {success, message} envelope the handlers
// use, so auth failures are not the one odd response shape in the API.
func deny(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"success": false, "message": msg})
}

// Protect validates the bearer token, loads the admin it identifies and
// stores it on the request context. Deactivated accounts are rejected
// even when their token is still valid.
func (a *Auth) Protect(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := bearerToken(c)
		if raw == "" {
			return deny(c, http.StatusUnauthorized, "not authorized, no token provided")
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return a.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			return deny(c, http.StatusUnauthorized, "not authorized, token invalid")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return deny(c, http.StatusUnauthorized, "not authorized, token invalid")
		}
		sub, ok := claims["sub"].(float64)
		if !ok {
			return deny(c, http.StatusUnauthorized, "not authorized, token invalid")
		}

		var admin models.Admin
		if err := a.DB.First(&admin, uint(sub)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return deny(c, http.StatusUnauthorized, "not authorized, admin not found")
			}
			return err
		}
		if !admin.IsActive {
			return deny(c, http.StatusUnauthorized, "not authorized, account deactivated")
		}

		c.Set(adminContextKey, &admin)
		return next(c)
	}
}

// Authorize gates a route on the authenticated admin's role. It assumes
// Protect already ran.
func (a *Auth) Authorize(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin := AdminFromContext(c)
			if admin == nil {
				return deny(c, http.StatusUnauthorized, "not authorized")
			}
			if !IsAuthorized(admin.Role, roles...) {
				return deny(c, http.StatusForbidden,
					fmt.Sprintf("role %q is not authorized to access this route", admin.Role))
			}
			return next(c)
		}
	}
}

// IsAuthorized reports whether role is in the required set. An empty
// required set allows any authenticated admin.
func IsAuthorized(role string, required ...string) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}

func AdminFromContext(c echo.Context) *models.Admin {
	if admin, ok := c.Get(adminContextKey).(*models.Admin); ok {
		return admin
	}
	return nil
}

func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
