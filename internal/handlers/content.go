package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/botanicglows/backend/internal/middleware"
	"github.com/botanicglows/backend/internal/models"
	"github.com/botanicglows/backend/internal/util"
)

type ContentHandler struct {
	DB *gorm.DB
}

var contentDefaults = map[string]map[string]any{
	"homepage": {"heroTitle": "Welcome to Botanic Glows", "heroSubtitle": "Natural beauty starts here", "aboutText": ""},
	"about":    {"title": "About Botanic Glows", "description": ""},
	"faq":      {"items": []any{}},
	"banners":  {"items": []any{}},
}

func validContentType(t string) bool {
	_, ok := contentDefaults[t]
	return ok
}

func contentData(content *models.Content) any {
	var data any
	if err := json.Unmarshal([]byte(content.Data), &data); err != nil {
		return map[string]any{}
	}
	return data
}

func (h *ContentHandler) GetContent(c echo.Context) error {
	t := c.Param("type")
	if !validContentType(t) {
		return respondError(c, http.StatusBadRequest, "unknown content type")
	}

	var content models.Content
	if err := h.DB.Where("type = ?", t).First(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respond(c, http.StatusOK, echo.Map{"type": t, "data": contentDefaults[t]})
		}
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"type": t, "data": contentData(&content)})
}

func (h *ContentHandler) UpdateContent(c echo.Context) error {
	t := c.Param("type")
	if !validContentType(t) {
		return respondError(c, http.StatusBadRequest, "unknown content type")
	}

	var req struct {
		Data any `json:"data"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	raw, err := json.Marshal(req.Data)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid content data")
	}

	var updatedBy uint
	if admin := middleware.AdminFromContext(c); admin != nil {
		updatedBy = admin.ID
	}

	var content models.Content
	err = h.DB.Where("type = ?", t).First(&content).Error
	switch {
	case err == nil:
		content.Data = string(raw)
		content.UpdatedBy = updatedBy
		if err := h.DB.Save(&content).Error; err != nil {
			return serviceError(c, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		content = models.Content{Type: t, Data: string(raw), UpdatedBy: updatedBy}
		if err := h.DB.Create(&content).Error; err != nil {
			return serviceError(c, err)
		}
	default:
		return serviceError(c, err)
	}

	return respond(c, http.StatusOK, echo.Map{"type": t, "data": req.Data})
}

func (h *ContentHandler) GetBlogs(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	q := h.DB.Model(&models.BlogPost{})
	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + search + "%"
		q = q.Where("title LIKE ? OR content LIKE ?", pattern, pattern)
	}
	if status := c.QueryParam("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return serviceError(c, err)
	}

	var blogs []models.BlogPost
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&blogs).Error; err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(blogs),
		"total":   total,
		"page":    page,
		"pages":   util.TotalPages(total, limit),
		"data":    blogs,
	})
}

func (h *ContentHandler) GetBlog(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid blog id")
	}

	var blog models.BlogPost
	if err := h.DB.First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, http.StatusNotFound, "blog post not found")
		}
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, blog)
}

type blogRequest struct {
	Title   string            `json:"title"`
	Content string            `json:"content"`
	Image   string            `json:"image"`
	Author  string            `json:"author"`
	Status  models.BlogStatus `json:"status"`
	Tags    string            `json:"tags"`
}

func (h *ContentHandler) CreateBlog(c echo.Context) error {
	var req blogRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Content == "" {
		return respondError(c, http.StatusBadRequest, "blog title and content are required")
	}
	if req.Status == "" {
		req.Status = models.BlogDraft
	}
	if req.Status != models.BlogDraft && req.Status != models.BlogPublished {
		return respondError(c, http.StatusBadRequest, "invalid blog status")
	}

	blog := models.BlogPost{
		Title:   req.Title,
		Content: req.Content,
		Image:   req.Image,
		Author:  req.Author,
		Status:  req.Status,
		Tags:    req.Tags,
	}
	if blog.Author == "" {
		blog.Author = "Botanic Glows"
	}
	if err := h.DB.Create(&blog).Error; err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusCreated, blog)
}

func (h *ContentHandler) UpdateBlog(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid blog id")
	}

	var blog models.BlogPost
	if err := h.DB.First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, http.StatusNotFound, "blog post not found")
		}
		return serviceError(c, err)
	}

	var req blogRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Title != "" {
		blog.Title = req.Title
	}
	if req.Content != "" {
		blog.Content = req.Content
	}
	if req.Status != "" {
		if req.Status != models.BlogDraft && req.Status != models.BlogPublished {
			return respondError(c, http.StatusBadRequest, "invalid blog status")
		}
		blog.Status = req.Status
	}
	blog.Image = req.Image
	blog.Tags = req.Tags
	if req.Author != "" {
		blog.Author = req.Author
	}

	if err := h.DB.Save(&blog).Error; err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, blog)
}

func (h *ContentHandler) DeleteBlog(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid blog id")
	}

	res := h.DB.Delete(&models.BlogPost{}, id)
	if res.Error != nil {
		return serviceError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return respondError(c, http.StatusNotFound, "blog post not found")
	}
	return respondMessage(c, http.StatusOK, "blog post deleted", nil)
}
