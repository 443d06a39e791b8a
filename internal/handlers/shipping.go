package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/botanicglows/backend/internal/models"
	"github.com/botanicglows/backend/internal/shipping"
)

type ShippingHandler struct {
	DB *gorm.DB
}

func (h *ShippingHandler) GetRates(c echo.Context) error {
	var rates []models.ShippingRate
	if err := h.DB.Order("province ASC, city ASC").Find(&rates).Error; err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, rates)
}

func (h *ShippingHandler) GetCities(c echo.Context) error {
	return respond(c, http.StatusOK, shipping.Cities)
}

// LookupRate answers the storefront's per-city rate query. Unknown
// cities get a zero rate rather than an error so checkout never blocks
// on missing table rows.
func (h *ShippingHandler) LookupRate(c echo.Context) error {
	province := c.QueryParam("province")
	city := c.QueryParam("city")
	if province == "" || city == "" {
		return respond(c, http.StatusOK, echo.Map{"rate": 0})
	}

	var sr models.ShippingRate
	if err := h.DB.Where("province = ? AND city = ?", province, city).First(&sr).Error; err != nil {
		return respond(c, http.StatusOK, echo.Map{"rate": 0})
	}
	return respond(c, http.StatusOK, echo.Map{"rate": sr.Rate})
}

type rateRequest struct {
	Province string   `json:"province"`
	City     string   `json:"city"`
	Rate     *float64 `json:"rate"`
}

func (h *ShippingHandler) upsertRate(req rateRequest) (*models.ShippingRate, error) {
	var sr models.ShippingRate
	err := h.DB.Where("province = ? AND city = ?", req.Province, req.City).First(&sr).Error
	if err == nil {
		sr.Rate = *req.Rate
		return &sr, h.DB.Save(&sr).Error
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	sr = models.ShippingRate{Province: req.Province, City: req.City, Rate: *req.Rate}
	return &sr, h.DB.Create(&sr).Error
}

func (h *ShippingHandler) SetRate(c echo.Context) error {
	var req rateRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Province == "" || req.City == "" || req.Rate == nil {
		return respondError(c, http.StatusBadRequest, "province, city, and rate are required")
	}

	sr, err := h.upsertRate(req)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, sr)
}

func (h *ShippingHandler) SetRatesBulk(c echo.Context) error {
	var req struct {
		Rates []rateRequest `json:"rates"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if len(req.Rates) == 0 {
		return respondError(c, http.StatusBadRequest, "rates are required")
	}

	for _, r := range req.Rates {
		if r.Province == "" || r.City == "" || r.Rate == nil {
			return respondError(c, http.StatusBadRequest, "province, city, and rate are required")
		}
		if _, err := h.upsertRate(r); err != nil {
			return serviceError(c, err)
		}
	}

	var all []models.ShippingRate
	if err := h.DB.Order("province ASC, city ASC").Find(&all).Error; err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, all)
}

func (h *ShippingHandler) DeleteRate(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid rate id")
	}

	if err := h.DB.Delete(&models.ShippingRate{}, id).Error; err != nil {
		return serviceError(c, err)
	}
	return respondMessage(c, http.StatusOK, "rate deleted", nil)
}
