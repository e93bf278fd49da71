package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/imamnura/mini-ecommerce-api/catalog"
	"github.com/imamnura/mini-ecommerce-api/filters"
	"github.com/imamnura/mini-ecommerce-api/models"
)

const exportBatchSize = 100

// ExportProductsToExcel pages through the whole remote catalog and streams
// it as a spreadsheet download.
func ExportProductsToExcel(api *catalog.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		for skip := 0; ; skip += exportBatchSize {
			page, err := api.Products(c.Request.Context(), exportBatchSize, skip, "")
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch products"})
				return
			}
			products = append(products, page.Products...)
			if len(page.Products) == 0 || len(products) >= page.Total {
				break
			}
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{
			"ID", "Title", "Brand", "Category", "Price",
			"DiscountPercentage", "Rating", "Stock", "Location", "Thumbnail",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Title)
			row.AddCell().SetValue(p.Brand)
			row.AddCell().SetValue(p.Category)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.DiscountPercentage)
			row.AddCell().SetValue(p.Rating)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(filters.Location(p.ID))
			row.AddCell().SetValue(p.Thumbnail)
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
