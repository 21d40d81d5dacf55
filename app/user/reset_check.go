package user

import (
	"net/http"

	"bilelaskri123/shop-api/internal"
	"bilelaskri123/shop-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CheckResetLink tells the frontend whether a reset link is still usable
// without consuming it, so the reset form isn't shown for dead links
func CheckResetLink(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	userID := c.Query("user_id")
	token := c.Query("token")

	if userID == "" || token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid or expired link",
			"requestID": requestID,
		})
		return
	}

	var u model.User

	if err := d.DB.Where("id = ?", userID).First(&u).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid or expired link",
			"requestID": requestID,
		})
		return
	}

	if u.ResetPasswordToken == nil || *u.ResetPasswordToken != token {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid or expired link",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "valid link",
		"requestID": requestID,
	})
}
