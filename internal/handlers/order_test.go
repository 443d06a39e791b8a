package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/botanicglows/backend/internal/models"
	"github.com/botanicglows/backend/internal/service/order"
)

func TestGetOrdersFilters(t *testing.T) {
	db := InitTestDB(t)
	engine := &order.Engine{DB: db}
	h := &OrderHandler{DB: db, Engine: engine}

	o := seedOrder(t, db, engine)
	_, err := engine.UpdateOrder(context.Background(), o.ID, order.UpdateOrderRequest{OrderStatus: models.OrderShipped})
	require.NoError(t, err)

	t.Run("by status", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodGet, "/api/admin/orders?orderStatus=Shipped", nil)
		require.NoError(t, h.GetOrders(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Total int64          `json:"total"`
			Data  []models.Order `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, int64(1), resp.Total)
		require.Len(t, resp.Data[0].Items, 1)
	})

	t.Run("by customer search", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodGet, "/api/admin/orders?search=ayesha", nil)
		require.NoError(t, h.GetOrders(c))

		var resp struct {
			Total int64 `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, int64(1), resp.Total)
	})

	t.Run("no match", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodGet, "/api/admin/orders?orderStatus=Delivered", nil)
		require.NoError(t, h.GetOrders(c))

		var resp struct {
			Total int64 `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Zero(t, resp.Total)
	})
}

func TestUpdateOrderEndpoint(t *testing.T) {
	db := InitTestDB(t)
	engine := &order.Engine{DB: db}
	h := &OrderHandler{DB: db, Engine: engine}
	o := seedOrder(t, db, engine)

	c, rec := newJSONContext(t, http.MethodPut, "/api/admin/orders/1", map[string]any{
		"orderStatus":    "Shipped",
		"trackingNumber": "TCS-98765",
	})
	c.SetParamNames("id")
	c.SetParamValues(itoa(o.ID))
	require.NoError(t, h.UpdateOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Order
	require.NoError(t, db.First(&got, o.ID).Error)
	require.Equal(t, models.OrderShipped, got.OrderStatus)
	require.Equal(t, "TCS-98765", got.TrackingNumber)

	t.Run("illegal transition", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPut, "/api/admin/orders/1", map[string]any{
			"orderStatus": "Pending",
		})
		c.SetParamNames("id")
		c.SetParamValues(itoa(o.ID))
		require.NoError(t, h.UpdateOrder(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown order", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPut, "/api/admin/orders/999", map[string]any{
			"orderStatus": "Shipped",
		})
		c.SetParamNames("id")
		c.SetParamValues("999")
		require.NoError(t, h.UpdateOrder(c))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetInvoiceEndpoint(t *testing.T) {
	db := InitTestDB(t)
	engine := &order.Engine{DB: db}
	h := &OrderHandler{DB: db, Engine: engine}
	o := seedOrder(t, db, engine)

	c, rec := newJSONContext(t, http.MethodGet, "/api/admin/orders/1/invoice", nil)
	c.SetParamNames("id")
	c.SetParamValues(itoa(o.ID))
	require.NoError(t, h.GetInvoice(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data order.Invoice `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, fmt.Sprintf("INV-%08d", o.ID), resp.Data.InvoiceNumber)
	require.Equal(t, o.TotalAmount, resp.Data.Total)
}
