package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/botanicglows/backend/internal/models"
	"github.com/botanicglows/backend/internal/service/order"
	"github.com/botanicglows/backend/internal/util"
)

// PublicHandler serves the storefront: catalog browsing, content,
// shipping lookups and checkout. No authentication.
type PublicHandler struct {
	DB     *gorm.DB
	Engine *order.Engine
}

func (h *PublicHandler) GetProducts(c echo.Context) error {
	q := h.DB.Model(&models.Product{}).Where("is_active = ?", true)

	if name := c.QueryParam("category"); name != "" {
		var category models.Category
		if err := h.DB.Where("LOWER(name) = LOWER(?)", name).First(&category).Error; err == nil {
			q = q.Where("category_id = ?", category.ID)
		}
	}
	if c.QueryParam("bestsellers") == "true" {
		q = q.Where("is_best_seller = ?", true)
	}
	if c.QueryParam("newarrivals") == "true" {
		q = q.Where("is_new_arrival = ?", true)
	}

	q = q.Preload("Category").Order("created_at DESC")
	if limit := util.ParseIntDefault(c.QueryParam("limit"), 0); limit > 0 {
		q = q.Limit(limit)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, products)
}

func (h *PublicHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid product id")
	}

	var product models.Product
	if err := h.DB.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, http.StatusNotFound, "product not found")
		}
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, product)
}

func (h *PublicHandler) GetCategories(c echo.Context) error {
	var categories []models.Category
	if err := h.DB.Where("is_active = ?", true).Order("name ASC").Find(&categories).Error; err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, categories)
}

func (h *PublicHandler) GetContent(c echo.Context) error {
	t := c.Param("type")
	var content models.Content
	if err := h.DB.Where("type = ?", t).First(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respond(c, http.StatusOK, map[string]any{})
		}
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, contentData(&content))
}

func (h *PublicHandler) GetBlog(c echo.Context) error {
	var posts []models.BlogPost
	if err := h.DB.Where("status = ?", models.BlogPublished).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, posts)
}

// CreateOrder is the checkout endpoint: the cart snapshot comes from
// the UI, prices and totals are recomputed server-side.
func (h *PublicHandler) CreateOrder(c echo.Context) error {
	var req order.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	o, err := h.Engine.CreateOrder(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusCreated, o)
}
