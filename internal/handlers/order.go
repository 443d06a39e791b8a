package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/botanicglows/backend/internal/models"
	"github.com/botanicglows/backend/internal/service/order"
	"github.com/botanicglows/backend/internal/util"
)

type OrderHandler struct {
	DB     *gorm.DB
	Engine *order.Engine
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	q := h.DB.Model(&models.Order{})
	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + search + "%"
		q = q.Where("customer_name LIKE ? OR customer_email LIKE ?", pattern, pattern)
	}
	if status := c.QueryParam("orderStatus"); status != "" {
		q = q.Where("order_status = ?", status)
	}
	if status := c.QueryParam("paymentStatus"); status != "" {
		q = q.Where("payment_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return serviceError(c, err)
	}

	var orders []models.Order
	if err := q.Preload("Items").Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(orders),
		"total":   total,
		"page":    page,
		"pages":   util.TotalPages(total, limit),
		"data":    orders,
	})
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid order id")
	}

	o, err := h.Engine.Get(c.Request().Context(), uint(id))
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, o)
}

func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid order id")
	}

	var req order.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	o, err := h.Engine.UpdateOrder(c.Request().Context(), uint(id), req)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, o)
}

func (h *OrderHandler) GetInvoice(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid order id")
	}

	inv, err := h.Engine.BuildInvoice(c.Request().Context(), uint(id))
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, inv)
}
