package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"c2b-order-backend/internal/auth"
	"c2b-order-backend/internal/database"
	"c2b-order-backend/internal/models"
)

type AuthHandler struct {
	db        *database.Client
	codes     auth.CodeService
	jwtSecret string
	tokenTTL  time.Duration
	devMode   bool
}

func NewAuthHandler(db *database.Client, codes auth.CodeService, jwtSecret string, tokenTTL time.Duration, devMode bool) *AuthHandler {
	return &AuthHandler{
		db:        db,
		codes:     codes,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		devMode:   devMode,
	}
}

// SendCode issues a verification code for a phone number. In development the
// code is echoed in the response so the flow works without an SMS gateway.
func (h *AuthHandler) SendCode(c *gin.Context) {
	var req models.SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil || !auth.ValidPhone(req.Phone) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid phone number"})
		return
	}

	code, err := h.codes.Send(req.Phone)
	if err != nil {
		logrus.WithError(err).WithField("phone", req.Phone).Error("failed to send verification code")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to send verification code"})
		return
	}

	resp := models.SendCodeResponse{Message: "verification code sent"}
	if h.devMode {
		resp.Code = code
	}
	c.JSON(http.StatusOK, resp)
}

// Login verifies phone + code, creates the user on first sight of the phone
// number, and issues a 7-day user token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Phone == "" || req.Code == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "phone and code are required"})
		return
	}

	if !auth.ValidPhone(req.Phone) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid phone number"})
		return
	}

	if !h.codes.Verify(req.Phone, req.Code) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "incorrect verification code"})
		return
	}

	user, err := h.db.FindOrCreateUserByPhone(req.Phone)
	if err != nil {
		logrus.WithError(err).Error("login: failed to find or create user")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "login failed"})
		return
	}

	token, err := auth.IssueToken(h.jwtSecret, user.ID, auth.RoleUser, h.tokenTTL)
	if err != nil {
		logrus.WithError(err).Error("login: failed to issue token")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "login failed"})
		return
	}

	logrus.WithField("user_id", user.ID).Info("user logged in")
	c.JSON(http.StatusOK, models.LoginResponse{
		Token: token,
		User:  models.UserInfo{ID: user.ID, Phone: user.Phone},
	})
}

// AdminLogin verifies username + password against the seeded admin record and
// issues an admin token. Unknown username and wrong password are reported
// identically.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "username and password are required"})
		return
	}

	admin, err := h.db.GetAdminByUsername(req.Username)
	if err != nil || !auth.CheckPassword(req.Password, admin.Password) {
		if err != nil {
			logrus.WithField("username", req.Username).Warn("admin login: unknown username")
		}
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "incorrect username or password"})
		return
	}

	token, err := auth.IssueToken(h.jwtSecret, admin.ID, auth.RoleAdmin, h.tokenTTL)
	if err != nil {
		logrus.WithError(err).Error("admin login: failed to issue token")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "login failed"})
		return
	}

	logrus.WithField("admin_id", admin.ID).Info("admin logged in")
	c.JSON(http.StatusOK, models.AdminLoginResponse{
		Token: token,
		Admin: models.AdminInfo{ID: admin.ID, Username: admin.Username},
	})
}
