package product

import (
	"net/http"
	"strconv"
	"strings"

	"bilelaskri123/shop-api/internal"
	"bilelaskri123/shop-api/internal/model"
	"bilelaskri123/shop-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func parsePrice(c *gin.Context, name string) (*float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}

	return &v, true
}

// pagination reads page/limit query params with the defaults the
// other listing endpoints use too
func pagination(c *gin.Context) (offset, limit int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err = strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	return (page - 1) * limit, limit
}

// List returns the catalogue, optionally filtered by a title substring
// and a price range
func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	minPrice, ok := parsePrice(c, "min_price")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid min_price provided",
			"requestID": requestID,
		})
		return
	}

	maxPrice, ok := parsePrice(c, "max_price")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid max_price provided",
			"requestID": requestID,
		})
		return
	}

	if err := validators.PriceRangeValidator(minPrice, maxPrice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	q := d.DB.Model(model.Product{})

	if title := c.Query("title"); title != "" {
		q = q.Where("title LIKE ?", "%"+strings.ToLower(title)+"%")
	}

	if minPrice != nil {
		q = q.Where("price >= ?", *minPrice)
	}

	if maxPrice != nil {
		q = q.Where("price <= ?", *maxPrice)
	}

	offset, limit := pagination(c)

	var products []model.Product

	err := q.Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&products).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch products", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, products)
}
