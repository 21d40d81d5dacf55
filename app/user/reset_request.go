package user

import (
	"net/http"

	"bilelaskri123/shop-api/internal"
	"bilelaskri123/shop-api/internal/model"
	"bilelaskri123/shop-api/pkg/security"
	"bilelaskri123/shop-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type forgotPasswordBody struct {
	Email string `json:"email"`
}

// resetRequested is the one and only success body of ForgotPassword,
// whether or not the email exists
func resetRequested(c *gin.Context, requestID string) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "If that email address is registered you will receive a password reset link shortly",
		"requestID": requestID,
	})
}

// ForgotPassword starts the reset flow. The response never tells whether
// the account exists, so the endpoint can't be used to enumerate emails.
func ForgotPassword(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data forgotPasswordBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	var u model.User

	if err := d.DB.Where("email = ?", data.Email).First(&u).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		resetRequested(c, requestID)
		return
	}

	token, err := security.MakeOneTimeToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := d.DB.Model(&u).Update("reset_password_token", token).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Token stays valid even if the mail fails, the user can just
	// request again
	if err := d.Mail.SendResetPasswordMail(u.Email, u.ID, token); err != nil {
		zap.L().Error("Failed to send reset password email", zap.Error(err), zap.String("requestID", requestID))
	}

	resetRequested(c, requestID)
}
