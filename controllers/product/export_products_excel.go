package productControllers

import (
	"net/http"

	"github.com/Emicy963/ecommerce-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /api/v1/products/seller/export-excel/
// Downloads the seller's own catalog as a spreadsheet.
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := ownStore(db, c)
		if !ok {
			return
		}

		var products []models.Product
		if err := db.Preload("Category").Where("store_id = ?", store.ID).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Name", "Slug", "Description", "Price",
			"Category", "InStock", "StockQuantity", "Featured", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Slug)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Price.String())
			if p.Category != nil {
				row.AddCell().SetValue(p.Category.Name)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(p.InStock)
			row.AddCell().SetValue(p.StockQuantity)
			row.AddCell().SetValue(p.Featured)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

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
