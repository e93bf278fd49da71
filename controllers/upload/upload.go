package uploadcontroller

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// UploadFile stores a multipart upload under the uploads directory and
// returns its public URL. The type field selects the target subfolder.
// POST /api/upload
func UploadFile(baseDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
			return
		}

		kind := c.PostForm("type")
		if kind != "avatar" && kind != "product" {
			c.JSON(http.StatusBadRequest, gin.H{"error": `Invalid upload type. Use "avatar" or "product"`})
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedExtensions[ext] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
			return
		}

		dir := filepath.Join(baseDir, kind+"s")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
			return
		}

		name := uuid.NewString() + ext
		if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"url":     "/uploads/" + kind + "s/" + name,
		})
	}
}
