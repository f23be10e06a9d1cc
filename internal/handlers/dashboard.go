package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/appdotbuilder/gameva-shop/internal/models"
)

// LowStockThreshold marks products that need restocking.
const LowStockThreshold = 10

type DashboardHandler struct {
	DB *gorm.DB
}

type TopSellingProduct struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	TotalSold   uint   `json:"total_sold"`
}

type DashboardMetrics struct {
	TotalSales         float64             `json:"total_sales"`
	TotalOrders        int64               `json:"total_orders"`
	NewOrdersToday     int64               `json:"new_orders_today"`
	TotalCustomers     int64               `json:"total_customers"`
	LowStockProducts   int64               `json:"low_stock_products"`
	TopSellingProducts []TopSellingProduct `json:"top_selling_products"`
}

// GetDashboardMetrics aggregates orders, users and products into one summary.
// Every field is zero (and the top-selling list empty) on an empty database.
func (h *DashboardHandler) GetDashboardMetrics(c echo.Context) error {
	var m DashboardMetrics

	if err := h.DB.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&m.TotalSales).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.DB.Model(&models.Order{}).Count(&m.TotalOrders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := h.DB.Model(&models.Order{}).
		Where("created_at >= ?", midnight).
		Count(&m.NewOrdersToday).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.DB.Model(&models.User{}).
		Where("role = ?", models.RoleCustomer).
		Count(&m.TotalCustomers).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.DB.Model(&models.Product{}).
		Where("stock_quantity <= ?", LowStockThreshold).
		Count(&m.LowStockProducts).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	m.TopSellingProducts = []TopSellingProduct{}
	if err := h.DB.Model(&models.OrderItem{}).
		Select("order_items.product_id, products.name AS product_name, SUM(order_items.quantity) AS total_sold").
		Joins("JOIN products ON products.id = order_items.product_id").
		Group("order_items.product_id, products.name").
		Order("total_sold DESC").
		Limit(5).
		Scan(&m.TopSellingProducts).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, m)
}
