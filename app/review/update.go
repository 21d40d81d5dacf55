package review

import (
	"net/http"
	"strconv"

	"bilelaskri123/shop-api/internal"
	"bilelaskri123/shop-api/internal/model"
	"bilelaskri123/shop-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type updateBody struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func fetchReview(c *gin.Context, d *internal.Deps, requestID string) (*model.Review, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid review ID",
			"requestID": requestID,
		})
		return nil, false
	}

	var rev model.Review

	err = d.DB.Where("id = ?", id).First(&rev).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Review not found",
				"requestID": requestID,
			})
			return nil, false
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch review", zap.Error(err), zap.String("requestID", requestID))
		return nil, false
	}

	return &rev, true
}

// Update edits a review. Only the author may update it, admins included —
// an admin edit of someone else's words makes no sense, deletion is the
// moderation tool.
func Update(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	rev, ok := fetchReview(c, d, requestID)
	if !ok {
		return
	}

	if rev.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "You are not authorized to update this review",
			"requestID": requestID,
		})
		return
	}

	var data updateBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	rating := rev.Rating
	if data.Rating != nil {
		rating = *data.Rating
	}

	comment := rev.Comment
	if data.Comment != nil {
		comment = *data.Comment
	}

	if err := validators.ReviewValidator(rating, comment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	rev.Rating = rating
	rev.Comment = comment

	if err := d.DB.Save(rev).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update review", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, rev)
}
