// Package product contains the catalogue endpoints
package product

import (
	"net/http"
	"strings"

	"bilelaskri123/shop-api/internal"
	"bilelaskri123/shop-api/internal/model"
	"bilelaskri123/shop-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createBody struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Create adds a product to the catalogue. Titles are stored lowercased
// so the listing filter can match case-insensitively.
func Create(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data createBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.ProductValidator(data.Title, data.Description, data.Price); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	p := model.Product{
		Title:       strings.ToLower(data.Title),
		Description: data.Description,
		Price:       data.Price,
		UserID:      userID,
	}

	if err := d.DB.Create(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create product", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, p)
}
