package review

import (
	"net/http"

	"bilelaskri123/shop-api/internal"
	"bilelaskri123/shop-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Delete removes a review. The author or an admin may do it
func Delete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	role := c.MustGet("userRole").(string)

	rev, ok := fetchReview(c, d, requestID)
	if !ok {
		return
	}

	if rev.UserID != userID && role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "You are not authorized to delete this review",
			"requestID": requestID,
		})
		return
	}

	if err := d.DB.Delete(rev).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete review", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Review deleted successfully",
		"requestID": requestID,
	})
}
