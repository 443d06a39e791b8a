package handlers

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/botanicglows/backend/internal/models"
	"github.com/botanicglows/backend/internal/service/order"
	"github.com/botanicglows/backend/internal/util"
)

type PaymentHandler struct {
	DB     *gorm.DB
	Engine *order.Engine
}

func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
		OrderID  uint    `json:"orderId"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	intent, err := h.Engine.CreateIntent(c.Request().Context(), req.Amount, req.Currency, req.OrderID)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, intent)
}

func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	var req struct {
		PaymentIntentID string `json:"paymentIntentId"`
		OrderID         uint   `json:"orderId"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	intent, err := h.Engine.VerifyPayment(c.Request().Context(), req.PaymentIntentID, req.OrderID)
	if err != nil {
		return serviceError(c, err)
	}
	return respondMessage(c, http.StatusOK, "payment verified", intent)
}

// Webhook needs the raw body: the signature covers the exact bytes the
// processor sent.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "cannot read payload")
	}
	sig := c.Request().Header.Get("Stripe-Signature")

	if err := h.Engine.HandleWebhook(c.Request().Context(), payload, sig); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"received": true})
}

func (h *PaymentHandler) ConfirmCOD(c echo.Context) error {
	var req struct {
		OrderID uint `json:"orderId"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	o, err := h.Engine.ConfirmCOD(c.Request().Context(), req.OrderID)
	if err != nil {
		return serviceError(c, err)
	}
	return respondMessage(c, http.StatusOK, "COD order confirmed", o)
}

// GetTransactions lists the ledger with a per-status revenue summary.
func (h *PaymentHandler) GetTransactions(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	q := h.DB.Model(&models.Transaction{})
	if status := c.QueryParam("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if method := c.QueryParam("paymentMethod"); method != "" {
		q = q.Where("payment_method = ?", method)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return serviceError(c, err)
	}

	var txns []models.Transaction
	if err := q.Preload("Order").Order("created_at DESC").Offset(offset).Limit(limit).Find(&txns).Error; err != nil {
		return serviceError(c, err)
	}

	var rows []struct {
		Status models.TransactionStatus
		Total  float64
		Count  int64
	}
	if err := h.DB.Model(&models.Transaction{}).
		Select("status, SUM(amount) AS total, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return serviceError(c, err)
	}
	summary := make(map[models.TransactionStatus]echo.Map, len(rows))
	for _, r := range rows {
		summary[r.Status] = echo.Map{"total": r.Total, "count": r.Count}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(txns),
		"total":   total,
		"page":    page,
		"pages":   util.TotalPages(total, limit),
		"summary": summary,
		"data":    txns,
	})
}
