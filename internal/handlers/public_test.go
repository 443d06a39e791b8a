package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/botanicglows/backend/internal/models"
	"github.com/botanicglows/backend/internal/service/order"
)

func seedCatalog(t *testing.T, db *gorm.DB) (models.Category, models.Product, models.Product) {
	cat := models.Category{Name: "Serums", IsActive: true}
	require.NoError(t, db.Create(&cat).Error)

	active := models.Product{
		Name: "Rosehip Serum", Description: "brightening", Price: 24.99,
		CategoryID: cat.ID, Stock: 10, IsActive: true, IsBestSeller: true,
	}
	require.NoError(t, db.Create(&active).Error)

	hidden := models.Product{
		Name: "Retired Toner", Description: "gone", Price: 9.99,
		CategoryID: cat.ID, Stock: 3, IsActive: false,
	}
	require.NoError(t, db.Create(&hidden).Error)
	// the model's gorm default:true wins over a zero-value false on insert,
	// so force the column to get an inactive row
	require.NoError(t, db.Model(&hidden).Update("is_active", false).Error)

	return cat, active, hidden
}

func TestPublicGetProducts(t *testing.T) {
	db := InitTestDB(t)
	h := &PublicHandler{DB: db}
	_, active, _ := seedCatalog(t, db)

	c, rec := newJSONContext(t, http.MethodGet, "/api/public/products", nil)
	require.NoError(t, h.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1, "inactive products must stay hidden")
	require.Equal(t, active.Name, resp.Data[0].Name)
	require.NotNil(t, resp.Data[0].Category)

	t.Run("bestseller filter", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodGet, "/api/public/products?bestsellers=true", nil)
		require.NoError(t, h.GetProducts(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data []models.Product `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
	})

	t.Run("category filter", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodGet, "/api/public/products?category=serums", nil)
		require.NoError(t, h.GetProducts(c))

		var resp struct {
			Data []models.Product `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
	})
}

func TestPublicGetProduct(t *testing.T) {
	db := InitTestDB(t)
	h := &PublicHandler{DB: db}
	_, active, _ := seedCatalog(t, db)

	c, rec := newJSONContext(t, http.MethodGet, "/api/public/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(itoa(active.ID))
	require.NoError(t, h.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("not found", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodGet, "/api/public/products/999", nil)
		c.SetParamNames("id")
		c.SetParamValues("999")
		require.NoError(t, h.GetProduct(c))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPublicGetBlog(t *testing.T) {
	db := InitTestDB(t)
	h := &PublicHandler{DB: db}

	require.NoError(t, db.Create(&models.BlogPost{
		Title: "Winter Skincare", Content: "moisturize", Status: models.BlogPublished,
	}).Error)
	require.NoError(t, db.Create(&models.BlogPost{
		Title: "Unfinished Draft", Content: "wip", Status: models.BlogDraft,
	}).Error)

	c, rec := newJSONContext(t, http.MethodGet, "/api/public/blog", nil)
	require.NoError(t, h.GetBlog(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.BlogPost `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	require.Equal(t, "Winter Skincare", resp.Data[0].Title)
}

func TestPublicCheckout(t *testing.T) {
	db := InitTestDB(t)
	engine := &order.Engine{DB: db}
	h := &PublicHandler{DB: db, Engine: engine}
	_, active, _ := seedCatalog(t, db)

	c, rec := newJSONContext(t, http.MethodPost, "/api/public/orders", map[string]any{
		"customerName":  "Ayesha Khan",
		"customerEmail": "ayesha@example.com",
		"paymentMethod": "CashOnDelivery",
		"shippingAddress": map[string]string{
			"street": "12 Mall Road",
			"city":   "Lahore",
			"state":  "Punjab",
		},
		"items": []map[string]any{
			{"productId": active.ID, "quantity": 2},
		},
	})
	require.NoError(t, h.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool         `json:"success"`
		Data    models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, 49.98, resp.Data.TotalAmount)

	t.Run("insufficient stock", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPost, "/api/public/orders", map[string]any{
			"customerName":  "Ayesha Khan",
			"customerEmail": "ayesha@example.com",
			"paymentMethod": "CashOnDelivery",
			"shippingAddress": map[string]string{
				"street": "12 Mall Road",
				"city":   "Lahore",
			},
			"items": []map[string]any{
				{"productId": active.ID, "quantity": 100},
			},
		})
		require.NoError(t, h.CreateOrder(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
