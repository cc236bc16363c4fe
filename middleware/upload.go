package middleware

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Uploader pushes an image to object storage and returns the public and
// secure URLs.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (publicURL, secureURL string, err error)
}

// FormImage reads the optional "image" multipart field and uploads it. Both
// URLs come back nil when no file was attached. A false return means the
// response has already been written.
func FormImage(c *gin.Context, storage Uploader, log *zap.Logger) (secureURL, publicURL *string, ok bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, nil, true
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image file"})
		return nil, nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image file"})
		return nil, nil, false
	}

	public, secure, err := storage.Upload(c.Request.Context(), data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Error("image upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return nil, nil, false
	}
	return &secure, &public, true
}
