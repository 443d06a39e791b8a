package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/botanicglows/backend/internal/logging"
	"github.com/botanicglows/backend/internal/payments"
	"github.com/botanicglows/backend/internal/service/order"
)

// Envelope is the JSON shape every endpoint answers with.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, Envelope{Success: true, Data: data})
}

func respondMessage(c echo.Context, code int, msg string, data any) error {
	return c.JSON(code, Envelope{Success: true, Message: msg, Data: data})
}

func respondError(c echo.Context, code int, msg string) error {
	return c.JSON(code, Envelope{Success: false, Message: msg})
}

// serviceError maps engine/gateway errors onto the envelope and status
// codes the API promises: 400 validation/signature, 404 missing, 503
// unconfigured processor, 500 for everything unexpected.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, order.ErrNotFound):
		return respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrValidation),
		errors.Is(err, order.ErrInsufficientStock),
		errors.Is(err, order.ErrPaymentIncomplete),
		errors.Is(err, payments.ErrInvalidSignature):
		return respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, payments.ErrNotConfigured):
		return respondError(c, http.StatusServiceUnavailable, "Stripe is not configured. Please set STRIPE_SECRET_KEY in .env")
	default:
		logging.FromContext(c.Request().Context()).Error("request failed", "err", err, "path", c.Path())
		return respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
