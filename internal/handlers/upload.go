package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"c2b-order-backend/internal/auth"
	"c2b-order-backend/internal/database"
	"c2b-order-backend/internal/middleware"
	"c2b-order-backend/internal/models"
	"c2b-order-backend/internal/storage"
)

var imageTypes = map[string]bool{
	models.ImageTypeLicense:     true,
	models.ImageTypeAuth:        true,
	models.ImageTypeIdcardFront: true,
	models.ImageTypeIdcardBack:  true,
}

type UploadHandler struct {
	db    *database.Client
	store *storage.LocalStorage
}

func NewUploadHandler(db *database.Client, store *storage.LocalStorage) *UploadHandler {
	return &UploadHandler{db: db, store: store}
}

// UploadImage attaches a typed image to one of the caller's orders. The file
// is validated (extension allow-list, 5 MiB cap) before anything is written.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	userID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no file uploaded"})
		return
	}

	orderIDStr := c.PostForm("orderId")
	imageType := c.PostForm("type")
	if orderIDStr == "" || imageType == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing order id or image type"})
		return
	}
	orderID64, err := strconv.ParseUint(orderIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return
	}
	orderID := uint(orderID64)

	if !imageTypes[imageType] {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid image type"})
		return
	}
	if !storage.AllowedExtension(file.Filename) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "only jpg, jpeg, png and gif files are allowed"})
		return
	}
	if file.Size > storage.MaxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "file exceeds the 5 MiB limit"})
		return
	}

	// The caller must own the target order; a foreign order looks absent.
	if _, err := h.db.GetOrder(orderID, userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
			return
		}
		logrus.WithError(err).Error("upload: failed to check order ownership")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "upload failed"})
		return
	}

	src, err := file.Open()
	if err != nil {
		logrus.WithError(err).Error("upload: failed to open multipart file")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "upload failed"})
		return
	}
	defer src.Close()

	url, err := h.store.Save(file.Filename, src)
	if err != nil {
		logrus.WithError(err).Error("upload: failed to store file")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "upload failed"})
		return
	}

	image := &models.Image{
		OrderID: orderID,
		Type:    imageType,
		URL:     url,
	}
	if err := h.db.CreateImage(image); err != nil {
		// The file made it to disk but the record did not; clean up so the
		// directory does not accumulate orphans.
		_ = h.store.Remove(url)
		logrus.WithError(err).Error("upload: failed to save image record")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "upload failed"})
		return
	}

	c.JSON(http.StatusOK, models.UploadResponse{URL: url, Image: *image})
}

// DeleteImage removes the image record and best-effort removes the backing
// file. Owners may delete images on their own orders; admins may delete any.
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	userID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	image, err := h.db.GetImage(imageID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "image not found"})
			return
		}
		logrus.WithError(err).Error("failed to get image")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete image"})
		return
	}

	if role, _ := c.Get(middleware.RoleKey); role != auth.RoleAdmin {
		if _, err := h.db.GetOrder(image.OrderID, userID); err != nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "image not found"})
			return
		}
	}

	if err := h.store.Remove(image.URL); err != nil {
		logrus.WithError(err).WithField("image_id", imageID).Warn("failed to remove backing file")
	}

	if err := h.db.DeleteImage(imageID); err != nil {
		logrus.WithError(err).Error("failed to delete image record")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete image"})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "image deleted"})
}
