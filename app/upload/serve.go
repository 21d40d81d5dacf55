package upload

import (
	"errors"
	"net/http"

	"bilelaskri123/shop-api/internal"

	"github.com/aws/smithy-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Serve streams a previously uploaded image by its key
func Serve(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No file key provided",
			"requestID": requestID,
		})
		return
	}

	obj, err := d.Uploader.Fetch(c.Request.Context(), key)
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "File not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch file", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer obj.Body.Close()

	contentType := "application/octet-stream"
	if obj.ContentType != nil {
		contentType = *obj.ContentType
	}

	var length int64
	if obj.ContentLength != nil {
		length = *obj.ContentLength
	}

	c.DataFromReader(http.StatusOK, length, contentType, obj.Body, map[string]string{
		"Cache-Control": "public, max-age=31536000, immutable",
	})
}
