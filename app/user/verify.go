package user

import (
	"net/http"

	"bilelaskri123/shop-api/internal"
	"bilelaskri123/shop-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VerifyEmail consumes a verification link. The token comparison and the
// clearing happen in one conditional update, so a second attempt with the
// same link (or two racing attempts) can't both succeed. Every kind of
// miss gets the same answer.
func VerifyEmail(c *gin.Context, d *internal.Deps) {
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

	r := d.DB.Model(model.User{}).
		Where("id = ? AND verification_token = ?", userID, token).
		Updates(map[string]any{
			"verified":           true,
			"verification_token": nil,
			"expires_at":         nil,
		})
	if r.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to consume verification token", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	if r.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid or expired link",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Account has been verified, please log in",
		"requestID": requestID,
	})
}
