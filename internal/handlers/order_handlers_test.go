package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/appdotbuilder/gameva-shop/internal/models"
)

func TestCreateOrderComputesTotal(t *testing.T) {
	env := newTestEnv(t)
	ck := login(t, env, "orders@example.com", models.RoleCustomer)

	body := map[string]any{
		"shipping_address_id": 1,
		"items": []map[string]any{
			{"product_id": 1, "quantity": 2, "price": 10.5},
			{"product_id": 2, "quantity": 1, "price": 4.0},
		},
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/orders", body, ck)
	require.NoError(t, env.O.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.Equal(t, 25.0, order.TotalAmount)
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)

	// prices are snapshots of what was supplied
	require.Equal(t, 10.5, order.Items[0].Price)

	var itemCount int64
	require.NoError(t, env.DB.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
	require.Equal(t, int64(2), itemCount)
}

func TestCreateOrderEmptyItems(t *testing.T) {
	env := newTestEnv(t)
	ck := login(t, env, "orders@example.com", models.RoleCustomer)

	body := map[string]any{
		"shipping_address_id": 1,
		"items":               []map[string]any{},
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/orders", body, ck)
	require.NoError(t, env.O.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.Equal(t, 0.0, order.TotalAmount)

	var itemCount int64
	require.NoError(t, env.DB.Model(&models.OrderItem{}).Count(&itemCount).Error)
	require.Equal(t, int64(0), itemCount)
}

func TestUpdateOrderStatus(t *testing.T) {
	env := newTestEnv(t)

	order := models.Order{UserID: 1, Status: models.OrderStatusPending, ShippingAddressID: 1}
	require.NoError(t, env.DB.Create(&order).Error)

	time.Sleep(10 * time.Millisecond)

	rec, c := env.doJSONRequest(http.MethodPatch, "/api/v1/admin/orders/1/status", map[string]string{
		"status": models.OrderStatusShipped,
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.O.UpdateOrderStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, models.OrderStatusShipped, updated.Status)
	require.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPatch, "/api/v1/admin/orders/9/status", map[string]string{
		"status": models.OrderStatusConfirmed,
	})
	c.SetParamNames("id")
	c.SetParamValues("9")
	err := env.O.UpdateOrderStatus(c)
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, httpErrorCode(t, err))
}

func TestUpdateOrderStatusRejectsUnknownValue(t *testing.T) {
	env := newTestEnv(t)

	order := models.Order{UserID: 1, Status: models.OrderStatusPending, ShippingAddressID: 1}
	require.NoError(t, env.DB.Create(&order).Error)

	_, c := env.doJSONRequest(http.MethodPatch, "/api/v1/admin/orders/1/status", map[string]string{
		"status": "lost-in-transit",
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	err := env.O.UpdateOrderStatus(c)
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
}

func TestGetUserOrdersNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ck := login(t, env, "orders@example.com", models.RoleCustomer)

	older := models.Order{UserID: 1, Status: models.OrderStatusPending, ShippingAddressID: 1,
		CreatedAt: time.Now().Add(-2 * time.Hour)}
	newer := models.Order{UserID: 1, Status: models.OrderStatusPending, ShippingAddressID: 1,
		CreatedAt: time.Now().Add(-1 * time.Hour)}
	other := models.Order{UserID: 2, Status: models.OrderStatusPending, ShippingAddressID: 1}
	require.NoError(t, env.DB.Create(&older).Error)
	require.NoError(t, env.DB.Create(&newer).Error)
	require.NoError(t, env.DB.Create(&other).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/orders", nil, ck)
	require.NoError(t, env.O.GetUserOrders(c))

	var orders []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
	require.Equal(t, newer.ID, orders[0].ID)
	require.Equal(t, older.ID, orders[1].ID)
}

func TestGetOrderJoinsShippingAddress(t *testing.T) {
	env := newTestEnv(t)

	address := models.Address{UserID: 1, Street: "1 Main St", City: "Springfield",
		State: "IL", ZipCode: "62704", Country: "US"}
	require.NoError(t, env.DB.Create(&address).Error)

	order := models.Order{UserID: 1, Status: models.OrderStatusPending,
		TotalAmount: 9.5, ShippingAddressID: address.ID}
	require.NoError(t, env.DB.Create(&order).Error)
	require.NoError(t, env.DB.Create(&models.OrderItem{
		OrderID: order.ID, ProductID: 1, Quantity: 1, Price: 9.5,
	}).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/orders/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.O.GetOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.ShippingAddress)
	require.Equal(t, "1 Main St", got.ShippingAddress.Street)
	require.Len(t, got.Items, 1)
}

func TestGetOrderNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/orders/3", nil)
	c.SetParamNames("id")
	c.SetParamValues("3")
	err := env.O.GetOrder(c)
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, httpErrorCode(t, err))
}
