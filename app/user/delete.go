package user

import (
	"net/http"

	"bilelaskri123/shop-api/internal"
	"bilelaskri123/shop-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Delete removes an account. Only the owner themselves or an admin may
// delete it, anyone else gets a 403.
func Delete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	callerID := c.MustGet("userID").(string)
	callerRole := c.MustGet("userRole").(string)

	targetID := c.Param("id")
	if targetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No user ID provided",
			"requestID": requestID,
		})
		return
	}

	if targetID != callerID && callerRole != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "Access denied",
			"requestID": requestID,
		})
		return
	}

	var u model.User

	if err := d.DB.Where("id = ?", targetID).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err := d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", targetID).Delete(&model.Review{}).Error; err != nil {
			return err
		}

		return tx.Delete(&u).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if u.ProfileImage != nil {
		if err := d.Uploader.Delete(c.Request.Context(), *u.ProfileImage); err != nil {
			zap.L().Error("Failed to delete profile image from storage", zap.Error(err), zap.String("requestID", requestID))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "User deleted successfully",
		"requestID": requestID,
	})
}
