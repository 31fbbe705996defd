package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"c2b-order-backend/internal/database"
	"c2b-order-backend/internal/middleware"
	"c2b-order-backend/internal/models"
)

type OrdersHandler struct {
	db *database.Client
}

func NewOrdersHandler(db *database.Client) *OrdersHandler {
	return &OrdersHandler{db: db}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// Create stores a new order for the caller. Business-field validation is
// deferred to the admin review step; only the status value is normalized.
func (h *OrdersHandler) Create(c *gin.Context) {
	userID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	status := models.OrderStatusDraft
	if req.Status == models.OrderStatusSubmitted {
		status = models.OrderStatusSubmitted
	}

	order := &models.Order{
		UserID:         userID,
		Status:         status,
		PayStatus:      models.PayStatusUnpaid,
		DeliveryStatus: models.DeliveryStatusUndelivered,
		IsInitial:      req.IsInitial,
		Quantity:       req.Quantity,
		CompanyName:    req.CompanyName,
		CreditCode:     req.CreditCode,
		BankName:       req.BankName,
		BankAccount:    req.BankAccount,
		AuthName:       req.AuthName,
		AuthPhone:      req.AuthPhone,
		AuthIdcard:     req.AuthIdcard,
		Images:         []models.Image{},
	}

	if err := h.db.CreateOrder(order); err != nil {
		logrus.WithError(err).Error("failed to create order")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// List returns the caller's orders, newest first, with attached images.
func (h *OrdersHandler) List(c *gin.Context) {
	userID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	orders, err := h.db.ListOrdersForUser(userID)
	if err != nil {
		logrus.WithError(err).Error("failed to list orders")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list orders"})
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// Get returns one of the caller's orders. Someone else's order and a missing
// order are both 404; callers cannot probe for existence.
func (h *OrdersHandler) Get(c *gin.Context) {
	userID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.db.GetOrder(orderID, userID)
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

// Update applies a partial field update to one of the caller's orders.
func (h *OrdersHandler) Update(c *gin.Context) {
	userID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if req.IsInitial != nil {
		fields["is_initial"] = *req.IsInitial
	}
	if req.Quantity != nil {
		fields["quantity"] = *req.Quantity
	}
	if req.CompanyName != nil {
		fields["company_name"] = *req.CompanyName
	}
	if req.CreditCode != nil {
		fields["credit_code"] = *req.CreditCode
	}
	if req.BankName != nil {
		fields["bank_name"] = *req.BankName
	}
	if req.BankAccount != nil {
		fields["bank_account"] = *req.BankAccount
	}
	if req.AuthName != nil {
		fields["auth_name"] = *req.AuthName
	}
	if req.AuthPhone != nil {
		fields["auth_phone"] = *req.AuthPhone
	}
	if req.AuthIdcard != nil {
		fields["auth_idcard"] = *req.AuthIdcard
	}

	order, err := h.db.UpdateOrderFields(orderID, userID, fields)
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

// Submit transitions a draft to submitted and assigns its order number.
func (h *OrdersHandler) Submit(c *gin.Context) {
	userID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.db.SubmitOrder(orderID, userID, models.NewOrderNo())
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
		case errors.Is(err, database.ErrAlreadySubmitted):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "order already submitted"})
		default:
			logrus.WithError(err).Error("failed to submit order")
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to submit order"})
		}
		return
	}

	logrus.WithFields(logrus.Fields{"order_id": order.ID, "order_no": order.OrderNo}).Info("order submitted")
	c.JSON(http.StatusOK, order)
}

// Revoke transitions a submitted, unpaid order back to draft. The assigned
// order number is kept; resubmitting generates a fresh one.
func (h *OrdersHandler) Revoke(c *gin.Context) {
	userID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.db.RevokeOrder(orderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
		case errors.Is(err, database.ErrNotSubmitted):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "only submitted orders can be revoked"})
		case errors.Is(err, database.ErrOrderPaid):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "paid orders cannot be revoked"})
		default:
			logrus.WithError(err).Error("failed to revoke order")
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to revoke order"})
		}
		return
	}

	logrus.WithField("order_id", order.ID).Info("order revoked")
	c.JSON(http.StatusOK, order)
}
