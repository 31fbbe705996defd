package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"c2b-order-backend/internal/models"
)

// HealthHandler reports service liveness. No auth.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "ok",
		Message: "C2B Order System API is running",
	})
}
