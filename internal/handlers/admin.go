package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"c2b-order-backend/internal/database"
	"c2b-order-backend/internal/models"
)

type AdminHandler struct {
	db *database.Client
}

func NewAdminHandler(db *database.Client) *AdminHandler {
	return &AdminHandler{db: db}
}

// ListUsers returns all users newest first, each with summaries of their
// submitted orders. Drafts stay invisible here.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.db.ListUsersWithSubmittedOrders()
	if err != nil {
		logrus.WithError(err).Error("failed to list users")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list users"})
		return
	}

	resp := make([]models.AdminUserResponse, 0, len(users))
	for _, u := range users {
		summaries := make([]models.OrderSummary, 0, len(u.Orders))
		for _, o := range u.Orders {
			summaries = append(summaries, models.OrderSummary{
				ID:             o.ID,
				OrderNo:        o.OrderNo,
				Status:         o.Status,
				PayStatus:      o.PayStatus,
				DeliveryStatus: o.DeliveryStatus,
			})
		}
		resp = append(resp, models.AdminUserResponse{
			ID:        u.ID,
			Phone:     u.Phone,
			CreatedAt: u.CreatedAt,
			Orders:    summaries,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// ListOrders returns the review queue: submitted orders only, newest first,
// with owner contact and images.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.db.ListSubmittedOrders()
	if err != nil {
		logrus.WithError(err).Error("failed to list submitted orders")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list orders"})
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns a single order with owner and images, regardless of status.
func (h *AdminHandler) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.db.GetOrderWithOwner(orderID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
			return
		}
		logrus.WithError(err).Error("failed to get order")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrder applies the admin-only partial update (payStatus,
// deliveryStatus, remark). Only fields present in the request change.
func (h *AdminHandler) UpdateOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.AdminUpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if req.PayStatus != nil {
		if *req.PayStatus != models.PayStatusUnpaid && *req.PayStatus != models.PayStatusPaid {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid payStatus"})
			return
		}
		fields["pay_status"] = *req.PayStatus
	}
	if req.DeliveryStatus != nil {
		if *req.DeliveryStatus != models.DeliveryStatusUndelivered && *req.DeliveryStatus != models.DeliveryStatusDelivered {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid deliveryStatus"})
			return
		}
		fields["delivery_status"] = *req.DeliveryStatus
	}
	if req.Remark != nil {
		fields["remark"] = *req.Remark
	}

	order, err := h.db.AdminUpdateOrder(orderID, fields)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
			return
		}
		logrus.WithError(err).Error("failed to update order")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update order"})
		return
	}

	c.JSON(http.StatusOK, order)
}
