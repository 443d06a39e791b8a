package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/botanicglows/backend/internal/models"
)

type DashboardHandler struct {
	DB *gorm.DB
}

const lowStockThreshold = 10

func (h *DashboardHandler) GetStats(c echo.Context) error {
	var (
		totalOrders    int64
		totalProducts  int64
		totalCustomers int64
		totalRevenue   float64
		lowStock       int64
	)

	if err := h.DB.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return serviceError(c, err)
	}
	if err := h.DB.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		return serviceError(c, err)
	}
	if err := h.DB.Model(&models.Customer{}).Count(&totalCustomers).Error; err != nil {
		return serviceError(c, err)
	}
	if err := h.DB.Model(&models.Order{}).
		Where("order_status <> ?", models.OrderCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return serviceError(c, err)
	}
	if err := h.DB.Model(&models.Product{}).
		Where("stock < ? AND is_active = ?", lowStockThreshold, true).
		Count(&lowStock).Error; err != nil {
		return serviceError(c, err)
	}

	var recent []models.Order
	if err := h.DB.Order("created_at DESC").Limit(10).Find(&recent).Error; err != nil {
		return serviceError(c, err)
	}

	var rows []struct {
		OrderStatus models.OrderStatus
		Count       int64
	}
	if err := h.DB.Model(&models.Order{}).
		Select("order_status, COUNT(*) AS count").
		Group("order_status").
		Scan(&rows).Error; err != nil {
		return serviceError(c, err)
	}
	statusCounts := make(map[models.OrderStatus]int64, len(rows))
	for _, r := range rows {
		statusCounts[r.OrderStatus] = r.Count
	}

	return respond(c, http.StatusOK, echo.Map{
		"totalOrders":       totalOrders,
		"totalProducts":     totalProducts,
		"totalCustomers":    totalCustomers,
		"totalRevenue":      totalRevenue,
		"lowStockProducts":  lowStock,
		"recentOrders":      recent,
		"orderStatusCounts": statusCounts,
	})
}

type salesBucket struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// GetSales aggregates revenue per day over the last week, or per month
// over the last year. Grouping happens in Go so the query stays
// portable across drivers.
func (h *DashboardHandler) GetSales(c echo.Context) error {
	period := c.QueryParam("period")
	if period == "" {
		period = "weekly"
	}

	now := time.Now()
	var (
		start  time.Time
		bucket func(t time.Time) string
	)
	switch period {
	case "monthly":
		start = time.Date(now.Year(), now.Month()-11, 1, 0, 0, 0, 0, now.Location())
		bucket = func(t time.Time) string { return t.Format("2006-01") }
	case "weekly":
		start = now.AddDate(0, 0, -7)
		bucket = func(t time.Time) string { return t.Format("2006-01-02") }
	default:
		return respondError(c, http.StatusBadRequest, "period must be weekly or monthly")
	}

	var orders []models.Order
	if err := h.DB.
		Where("created_at >= ? AND order_status <> ?", start, models.OrderCancelled).
		Find(&orders).Error; err != nil {
		return serviceError(c, err)
	}

	buckets := map[string]*salesBucket{}
	for _, o := range orders {
		key := bucket(o.CreatedAt)
		b, ok := buckets[key]
		if !ok {
			b = &salesBucket{Period: key}
			buckets[key] = b
		}
		b.Revenue += o.TotalAmount
		b.Orders++
	}

	data := make([]salesBucket, 0, len(buckets))
	for _, b := range buckets {
		data = append(data, *b)
	}
	sort.Slice(data, func(i, j int) bool { return data[i].Period < data[j].Period })

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"period":  period,
		"data":    data,
	})
}
