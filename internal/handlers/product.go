package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/appdotbuilder/gameva-shop/internal/models"
	"github.com/appdotbuilder/gameva-shop/internal/mykafka"
	"github.com/appdotbuilder/gameva-shop/internal/service/search"
	"github.com/appdotbuilder/gameva-shop/internal/util"
)

type ProductHandler struct {
	DB        *gorm.DB
	Producer  *mykafka.Producer
	JWTSecret []byte
	ES        *elasticsearch.Client
	Index     string
}

// index mirrors a product into elasticsearch, best effort.
func (h *ProductHandler) index(c echo.Context, p *models.Product) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.IndexProduct(ctx, h.ES, h.Index, p); err != nil {
		c.Logger().Errorf("ES index error: %v", err)
	}
}

func (h *ProductHandler) unindex(c echo.Context, id uint) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.DeleteProduct(ctx, h.ES, h.Index, id); err != nil {
		c.Logger().Errorf("ES delete error: %v", err)
	}
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, product)
}

// GetProducts lists products newest-first. The category, search and featured
// filters compose with AND semantics; the name search is a case-insensitive
// substring match.
func (h *ProductHandler) GetProducts(c echo.Context) error {
	limit := parseIntDefault(c.QueryParam("limit"), util.DefaultLimit)
	offset := parseIntDefault(c.QueryParam("offset"), 0)
	limit, offset = util.Clamp(limit, offset)

	q := h.DB.Model(&models.Product{})

	if v := c.QueryParam("category_id"); v != "" {
		categoryID, err := strconv.Atoi(v)
		if err != nil {
			return errorResponse(c, http.StatusBadRequest, err)
		}
		q = q.Where("category_id = ?", categoryID)
	}
	if v := c.QueryParam("search"); v != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(v)+"%")
	}
	if v := c.QueryParam("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return errorResponse(c, http.StatusBadRequest, err)
		}
		q = q.Where("featured = ?", featured)
	}

	var items []models.Product
	if err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) GetFeaturedProducts(c echo.Context) error {
	var items []models.Product
	if err := h.DB.Where("featured = ?", true).Order("id DESC").Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req struct {
		Name          string   `json:"name"`
		Description   *string  `json:"description"`
		Price         float64  `json:"price"`
		StockQuantity int      `json:"stock_quantity"`
		CategoryID    uint     `json:"category_id"`
		Images        []string `json:"images"`
		Featured      bool     `json:"featured"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.Price <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "price must be positive")
	}
	if req.StockQuantity < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "stock_quantity must be non-negative")
	}
	if req.Images == nil {
		req.Images = []string{}
	}

	prod := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		Images:        req.Images,
		Featured:      req.Featured,
	}
	if err := h.DB.Create(&prod).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.index(c, &prod)
	publish(c, h.Producer, "product_events", map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusCreated, prod)
}

// PatchProduct applies field-by-field patch semantics: only the fields present
// in the request body change.
func (h *ProductHandler) PatchProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var req struct {
		Name          *string   `json:"name"`
		Description   *string   `json:"description"`
		Price         *float64  `json:"price"`
		StockQuantity *int      `json:"stock_quantity"`
		CategoryID    *uint     `json:"category_id"`
		Images        *[]string `json:"images"`
		Featured      *bool     `json:"featured"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var prod models.Product
	if err := h.DB.First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "price must be positive")
		}
		prod.Price = *req.Price
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "stock_quantity must be non-negative")
		}
		prod.StockQuantity = *req.StockQuantity
	}
	if req.CategoryID != nil {
		prod.CategoryID = *req.CategoryID
	}
	if req.Images != nil {
		prod.Images = *req.Images
	}
	if req.Featured != nil {
		prod.Featured = *req.Featured
	}

	if err := h.DB.Save(&prod).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.index(c, &prod)
	publish(c, h.Producer, "product_events", map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusOK, prod)
}

// DeleteProduct removes a product and reports whether a row actually existed.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	res := h.DB.Delete(&models.Product{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	deleted := res.RowsAffected > 0

	if deleted {
		h.unindex(c, uint(id))
		publish(c, h.Producer, "product_events", map[string]any{
			"type":      "product_deleted",
			"productID": id,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": deleted})
}
