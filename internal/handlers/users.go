package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"c2b-order-backend/internal/database"
	"c2b-order-backend/internal/middleware"
	"c2b-order-backend/internal/models"
)

type UsersHandler struct {
	db *database.Client
}

func NewUsersHandler(db *database.Client) *UsersHandler {
	return &UsersHandler{db: db}
}

// Profile returns the authenticated user's own record.
func (h *UsersHandler) Profile(c *gin.Context) {
	userID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	user, err := h.db.GetUser(userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "user not found"})
			return
		}
		logrus.WithError(err).Error("failed to get user profile")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}
