package user

import (
	"net/http"
	"time"

	"bilelaskri123/shop-api/internal"
	"bilelaskri123/shop-api/internal/model"
	"bilelaskri123/shop-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Minimum gap between two verification mails for the same account
const resendCooldown = time.Minute * 10

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// invalidCredentials is the single response for a wrong email and a wrong
// password. The two cases must be indistinguishable to the client.
func invalidCredentials(c *gin.Context, requestID string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":     "Invalid email or password",
		"requestID": requestID,
	})
}

func Login(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Email == "" || data.Password == "" {
		invalidCredentials(c, requestID)
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

		invalidCredentials(c, requestID)
		return
	}

	ok, err := d.Argon.VerifyPasswd(data.Password, u.PasswordHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !ok {
		invalidCredentials(c, requestID)
		return
	}

	// Valid credentials on an unverified account never yield a session
	// token. Re-issue the verification link instead.
	if !u.Verified {
		resendVerification(c, d, &u, requestID)
		return
	}

	token, err := security.MakeSessionToken(u.ID, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate session token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userID": u.ID,
	})
}

func resendVerification(c *gin.Context, d *internal.Deps, u *model.User, requestID string) {
	token := u.VerificationToken

	if token == nil {
		fresh, err := security.MakeOneTimeToken()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to generate verification token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if err := d.DB.Model(u).Update("verification_token", fresh).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to store verification token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		token = &fresh
	}

	if u.VerificationSentAt == nil || time.Since(*u.VerificationSentAt) > resendCooldown {
		if err := d.Mail.SendVerificationMail(u.Email, u.ID, *token); err != nil {
			zap.L().Error("Failed to resend verification email", zap.Error(err), zap.String("requestID", requestID))
		} else {
			now := time.Now()
			if err := d.DB.Model(u).Update("verification_sent_at", now).Error; err != nil {
				zap.L().Error("Failed to update resend timestamp", zap.Error(err), zap.String("requestID", requestID))
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Verification link has been sent to your email, please verify your email address",
		"requestID": requestID,
	})
}
