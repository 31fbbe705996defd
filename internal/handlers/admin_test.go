package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"c2b-order-backend/internal/models"
)

func TestAdminRoutes_ForbiddenForUsers(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.loginUser(t, "13800000000")

	for _, path := range []string{"/api/admin/users", "/api/admin/orders"} {
		w := env.doJSON(t, "GET", path, userToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}
}

func TestAdminListOrders_ExcludesDrafts(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.loginUser(t, "13800000000")
	adminToken := env.loginAdmin(t, "root", "changeme")

	createOrderViaAPI(t, env, userToken) // stays draft
	submitted := createOrderViaAPI(t, env, userToken)
	w := env.doJSON(t, "POST", fmt.Sprintf("/api/orders/%d/submit", submitted.ID), userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, "GET", "/api/admin/orders", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, submitted.ID, orders[0].ID)
	require.NotNil(t, orders[0].User)
	assert.Equal(t, "13800000000", orders[0].User.Phone)
}

func TestAdminUpdateOrder_PartialFields(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.loginUser(t, "13800000000")
	adminToken := env.loginAdmin(t, "root", "changeme")

	order := createOrderViaAPI(t, env, userToken)
	path := fmt.Sprintf("/api/admin/orders/%d", order.ID)

	w := env.doJSON(t, "PATCH", path, adminToken, gin.H{"payStatus": "paid"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.PayStatusPaid, updated.PayStatus)
	assert.Equal(t, models.DeliveryStatusUndelivered, updated.DeliveryStatus)

	w = env.doJSON(t, "PATCH", path, adminToken, gin.H{"deliveryStatus": "delivered", "remark": "shipped friday"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.PayStatusPaid, updated.PayStatus)
	assert.Equal(t, models.DeliveryStatusDelivered, updated.DeliveryStatus)
	assert.Equal(t, "shipped friday", updated.Remark)
}

func TestAdminUpdateOrder_InvalidValues(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.loginUser(t, "13800000000")
	adminToken := env.loginAdmin(t, "root", "changeme")
	order := createOrderViaAPI(t, env, userToken)
	path := fmt.Sprintf("/api/admin/orders/%d", order.ID)

	w := env.doJSON(t, "PATCH", path, adminToken, gin.H{"payStatus": "refunded"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.doJSON(t, "PATCH", path, adminToken, gin.H{"deliveryStatus": "lost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminListUsers(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.loginUser(t, "13800000000")
	env.loginUser(t, "13900000000")
	adminToken := env.loginAdmin(t, "root", "changeme")

	submitted := createOrderViaAPI(t, env, userToken)
	w := env.doJSON(t, "POST", fmt.Sprintf("/api/orders/%d/submit", submitted.ID), userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, "GET", "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []models.AdminUserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)

	var withOrders *models.AdminUserResponse
	for i := range users {
		if users[i].Phone == "13800000000" {
			withOrders = &users[i]
		}
	}
	require.NotNil(t, withOrders)
	require.Len(t, withOrders.Orders, 1)
	assert.Equal(t, models.OrderStatusSubmitted, withOrders.Orders[0].Status)
	assert.NotNil(t, withOrders.Orders[0].OrderNo)
}

// The full review workflow from the user and admin sides.
func TestEndToEnd_OrderLifecycle(t *testing.T) {
	env := newTestEnv(t)

	// User logs in with the development code.
	userToken := env.loginUser(t, "13800000000")

	// Creates a draft order.
	w := env.doJSON(t, "POST", "/api/orders", userToken, gin.H{"quantity": 2, "isInitial": true})
	require.Equal(t, http.StatusOK, w.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, models.OrderStatusDraft, order.Status)
	assert.Nil(t, order.OrderNo)

	// Submits it.
	w = env.doJSON(t, "POST", fmt.Sprintf("/api/orders/%d/submit", order.ID), userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, models.OrderStatusSubmitted, order.Status)
	require.NotNil(t, order.OrderNo)
	assert.Regexp(t, `^C2B[A-Z0-9]{8}$`, *order.OrderNo)

	// Admin marks it paid.
	adminToken := env.loginAdmin(t, "root", "changeme")
	w = env.doJSON(t, "PATCH", fmt.Sprintf("/api/admin/orders/%d", order.ID), adminToken, gin.H{"payStatus": "paid"})
	require.Equal(t, http.StatusOK, w.Code)

	// The user can no longer revoke.
	w = env.doJSON(t, "POST", fmt.Sprintf("/api/orders/%d/revoke", order.ID), userToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
