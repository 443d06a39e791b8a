package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/botanicglows/backend/internal/models"
	"github.com/botanicglows/backend/internal/service/order"
)

func TestGetStats(t *testing.T) {
	db := InitTestDB(t)
	engine := &order.Engine{DB: db}
	h := &DashboardHandler{DB: db}

	first := seedOrder(t, db, engine)
	second := seedOrder(t, db, engine)
	_, err := engine.UpdateOrder(context.Background(), second.ID, order.UpdateOrderRequest{OrderStatus: models.OrderCancelled})
	require.NoError(t, err)

	// a low-stock product that must be counted
	require.NoError(t, db.Create(&models.Product{
		Name: "Last Drops Oil", Description: "d", Price: 12, Stock: 2, CategoryID: 1, IsActive: true,
	}).Error)

	c, rec := newJSONContext(t, http.MethodGet, "/api/admin/dashboard/stats", nil)
	require.NoError(t, h.GetStats(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			TotalOrders       int64                        `json:"totalOrders"`
			TotalRevenue      float64                      `json:"totalRevenue"`
			LowStockProducts  int64                        `json:"lowStockProducts"`
			RecentOrders      []models.Order               `json:"recentOrders"`
			OrderStatusCounts map[models.OrderStatus]int64 `json:"orderStatusCounts"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(2), resp.Data.TotalOrders)
	// cancelled orders never count toward revenue
	require.Equal(t, first.TotalAmount, resp.Data.TotalRevenue)
	// the first order's product dropped to 9 units, the cancelled one was
	// restored to 10, and the oil sits at 2
	require.Equal(t, int64(2), resp.Data.LowStockProducts)
	require.Len(t, resp.Data.RecentOrders, 2)
	require.Equal(t, int64(1), resp.Data.OrderStatusCounts[models.OrderPending])
	require.Equal(t, int64(1), resp.Data.OrderStatusCounts[models.OrderCancelled])
}

func TestGetSales(t *testing.T) {
	db := InitTestDB(t)
	engine := &order.Engine{DB: db}
	h := &DashboardHandler{DB: db}

	seedOrder(t, db, engine)
	seedOrder(t, db, engine)

	c, rec := newJSONContext(t, http.MethodGet, "/api/admin/dashboard/sales?period=weekly", nil)
	require.NoError(t, h.GetSales(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Period string `json:"period"`
		Data   []struct {
			Period  string  `json:"period"`
			Revenue float64 `json:"revenue"`
			Orders  int64   `json:"orders"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "weekly", resp.Period)
	require.Len(t, resp.Data, 1, "both orders land in today's bucket")
	require.Equal(t, int64(2), resp.Data[0].Orders)

	t.Run("invalid period", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodGet, "/api/admin/dashboard/sales?period=hourly", nil)
		require.NoError(t, h.GetSales(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
