package user

import (
	"net/http"

	"bilelaskri123/shop-api/internal"
	"bilelaskri123/shop-api/internal/model"
	"bilelaskri123/shop-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func loadUser(c *gin.Context, d *internal.Deps, requestID string) (*model.User, bool) {
	userID := c.MustGet("userID").(string)

	var u model.User

	if err := d.DB.Where("id = ?", userID).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return nil, false
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return nil, false
	}

	return &u, true
}

// UploadProfileImage stores a new profile image and drops the old one
func UploadProfileImage(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	u, ok := loadUser(c, d, requestID)
	if !ok {
		return
	}

	fh, err := c.FormFile("user-image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	code, f, err := validators.ImageValidator(fh)
	if err != nil {
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to validate image", zap.Error(err), zap.String("requestID", requestID))

			c.JSON(code, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})
			return
		}

		c.JSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	key, err := d.Uploader.Do(f, fh.Size, fh.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to upload profile image", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	old := u.ProfileImage

	if err := d.DB.Model(u).Update("profile_image", key).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store profile image key", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if old != nil {
		if err := d.Uploader.Delete(c.Request.Context(), *old); err != nil {
			zap.L().Error("Failed to delete old profile image", zap.Error(err), zap.String("requestID", requestID))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"profileImage": key,
		"requestID":    requestID,
	})
}

// GetProfileImage streams the caller's profile image from storage
func GetProfileImage(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	u, ok := loadUser(c, d, requestID)
	if !ok {
		return
	}

	if u.ProfileImage == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "There is no profile image",
			"requestID": requestID,
		})
		return
	}

	obj, err := d.Uploader.Fetch(c.Request.Context(), *u.ProfileImage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch profile image", zap.Error(err), zap.String("requestID", requestID))
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

	c.DataFromReader(http.StatusOK, length, contentType, obj.Body, nil)
}

// DeleteProfileImage removes the stored image and clears the column
func DeleteProfileImage(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	u, ok := loadUser(c, d, requestID)
	if !ok {
		return
	}

	if u.ProfileImage == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "There is no profile image",
			"requestID": requestID,
		})
		return
	}

	if err := d.Uploader.Delete(c.Request.Context(), *u.ProfileImage); err != nil {
		zap.L().Error("Failed to delete profile image from storage", zap.Error(err), zap.String("requestID", requestID))
	}

	if err := d.DB.Model(u).Update("profile_image", nil).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to clear profile image key", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Profile image removed",
		"requestID": requestID,
	})
}
