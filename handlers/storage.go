package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"localbooker/services/storage"
	"localbooker/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHandler serves media uploads (profile pictures, the platform logo).
type StorageHandler struct {
	Storage storage.StorageService
}

// UploadHandler handles POST /uploads. The file is staged to a temp path and
// pushed to Cloudinary; the response carries the public id and URL.
func (h *StorageHandler) UploadHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	folder := c.DefaultPostForm("folder", "uploads")

	tmp := filepath.Join(os.TempDir(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, tmp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stage upload"})
		return
	}
	defer os.Remove(tmp)

	publicID, err := h.Storage.UploadFile(c.Request.Context(), tmp, folder)
	if err != nil {
		utils.GetLogger().Error("upload failed", zap.String("file", file.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	url, err := h.Storage.GetDownloadURL(c.Request.Context(), "image", publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"publicId": publicID, "url": url})
}

// DeleteUploadHandler handles DELETE /admin/uploads/:id.
func (h *StorageHandler) DeleteUploadHandler(c *gin.Context) {
	if err := h.Storage.DeleteFile(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
