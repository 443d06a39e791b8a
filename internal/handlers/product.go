package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/botanicglows/backend/internal/events"
	"github.com/botanicglows/backend/internal/models"
	"github.com/botanicglows/backend/internal/util"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", c.Path(), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

type productRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	CategoryID   uint    `json:"categoryId"`
	Images       string  `json:"images"`
	Ingredients  string  `json:"ingredients"`
	Stock        int     `json:"stock"`
	IsActive     *bool   `json:"isActive"`
	Discount     float64 `json:"discount"`
	IsNewArrival bool    `json:"isNewArrival"`
	IsBestSeller bool    `json:"isBestSeller"`
}

func (r *productRequest) validate(db *gorm.DB) string {
	if r.Name == "" {
		return "product name is required"
	}
	if r.Description == "" {
		return "description is required"
	}
	if r.Price < 0 {
		return "price must be a positive number"
	}
	if r.Stock < 0 {
		return "stock must be a non-negative integer"
	}
	if r.Discount < 0 || r.Discount > 100 {
		return "discount must be between 0 and 100"
	}
	if r.CategoryID == 0 {
		return "category is required"
	}
	var category models.Category
	if err := db.First(&category, r.CategoryID).Error; err != nil {
		return "category not found"
	}
	return ""
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	q := h.DB.Model(&models.Product{})
	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return serviceError(c, err)
	}

	var items []models.Product
	if err := q.Preload("Category").Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(items),
		"total":   total,
		"page":    page,
		"pages":   util.TotalPages(total, limit),
		"data":    items,
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
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

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if msg := req.validate(h.DB); msg != "" {
		return respondError(c, http.StatusBadRequest, msg)
	}

	product := models.Product{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		CategoryID:   req.CategoryID,
		Images:       req.Images,
		Ingredients:  req.Ingredients,
		Stock:        req.Stock,
		IsActive:     true,
		Discount:     req.Discount,
		IsNewArrival: req.IsNewArrival,
		IsBestSeller: req.IsBestSeller,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.DB.Create(&product).Error; err != nil {
		return serviceError(c, err)
	}

	h.publish(c, map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})
	return respond(c, http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid product id")
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, http.StatusNotFound, "product not found")
		}
		return serviceError(c, err)
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if msg := req.validate(h.DB); msg != "" {
		return respondError(c, http.StatusBadRequest, msg)
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.CategoryID = req.CategoryID
	product.Images = req.Images
	product.Ingredients = req.Ingredients
	product.Stock = req.Stock
	product.Discount = req.Discount
	product.IsNewArrival = req.IsNewArrival
	product.IsBestSeller = req.IsBestSeller
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&product).Error; err != nil {
		return serviceError(c, err)
	}

	h.publish(c, map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})
	return respond(c, http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid product id")
	}

	res := h.DB.Delete(&models.Product{}, id)
	if res.Error != nil {
		return serviceError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return respondError(c, http.StatusNotFound, "product not found")
	}

	h.publish(c, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return respondMessage(c, http.StatusOK, "product deleted", nil)
}

func (h *ProductHandler) GetCategories(c echo.Context) error {
	var categories []models.Category
	if err := h.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, categories)
}

func (h *ProductHandler) CreateCategory(c echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return respondError(c, http.StatusBadRequest, "category name is required")
	}

	category := models.Category{Name: req.Name, Description: req.Description, IsActive: true}
	if err := h.DB.Create(&category).Error; err != nil {
		return respondError(c, http.StatusBadRequest, "category already exists")
	}
	return respond(c, http.StatusCreated, category)
}

func (h *ProductHandler) UpdateCategory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid category id")
	}

	var category models.Category
	if err := h.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, http.StatusNotFound, "category not found")
		}
		return serviceError(c, err)
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsActive    *bool  `json:"isActive"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name != "" {
		category.Name = req.Name
	}
	category.Description = req.Description
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&category).Error; err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, category)
}

// DeleteCategory refuses to remove a category while products still
// reference it.
func (h *ProductHandler) DeleteCategory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid category id")
	}

	var inUse int64
	if err := h.DB.Model(&models.Product{}).Where("category_id = ?", id).Count(&inUse).Error; err != nil {
		return serviceError(c, err)
	}
	if inUse > 0 {
		return respondError(c, http.StatusBadRequest,
			"cannot delete: "+strconv.FormatInt(inUse, 10)+" products use this category")
	}

	res := h.DB.Delete(&models.Category{}, id)
	if res.Error != nil {
		return serviceError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return respondError(c, http.StatusNotFound, "category not found")
	}
	return respondMessage(c, http.StatusOK, "category deleted", nil)
}
