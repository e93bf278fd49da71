package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/imamnura/mini-ecommerce-api/catalog"
	"github.com/imamnura/mini-ecommerce-api/listing"
)

// GetProducts proxies one page of the remote catalog. A "q" parameter routes
// the request to the remote search endpoint; the response shape is the same
// either way.
func GetProducts(api *catalog.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(listing.DefaultPageSize)))
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
		if err != nil || skip < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid skip"})
			return
		}

		resp, err := api.Products(c.Request.Context(), limit, skip, c.Query("q"))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetProductByID proxies a single product lookup.
// URL param: /api/products/:id
func GetProductByID(api *catalog.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		product, err := api.Product(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GetCategories proxies the remote category listing.
func GetCategories(api *catalog.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := api.Categories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}
