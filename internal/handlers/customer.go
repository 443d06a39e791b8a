package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/botanicglows/backend/internal/models"
	"github.com/botanicglows/backend/internal/util"
)

type CustomerHandler struct {
	DB *gorm.DB
}

func (h *CustomerHandler) GetCustomers(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	q := h.DB.Model(&models.Customer{})
	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + search + "%"
		q = q.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return serviceError(c, err)
	}

	var customers []models.Customer
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&customers).Error; err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(customers),
		"total":   total,
		"page":    page,
		"pages":   util.TotalPages(total, limit),
		"data":    customers,
	})
}

func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid customer id")
	}

	var customer models.Customer
	if err := h.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, http.StatusNotFound, "customer not found")
		}
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, customer)
}

// ToggleBlock flips the blocked flag; blocked customers cannot check
// out.
func (h *CustomerHandler) ToggleBlock(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid customer id")
	}

	var customer models.Customer
	if err := h.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, http.StatusNotFound, "customer not found")
		}
		return serviceError(c, err)
	}

	customer.IsBlocked = !customer.IsBlocked
	if err := h.DB.Model(&customer).Update("is_blocked", customer.IsBlocked).Error; err != nil {
		return serviceError(c, err)
	}

	msg := "customer unblocked"
	if customer.IsBlocked {
		msg = "customer blocked"
	}
	return respondMessage(c, http.StatusOK, msg, customer)
}

func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid customer id")
	}

	res := h.DB.Delete(&models.Customer{}, id)
	if res.Error != nil {
		return serviceError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return respondError(c, http.StatusNotFound, "customer not found")
	}
	return respondMessage(c, http.StatusOK, "customer deleted", nil)
}

func (h *CustomerHandler) GetCustomerOrders(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid customer id")
	}

	var orders []models.Order
	if err := h.DB.Preload("Items").
		Where("customer_id = ?", id).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, orders)
}
