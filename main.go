package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/imamnura/mini-ecommerce-api/cart"
	"github.com/imamnura/mini-ecommerce-api/catalog"
	browsecontroller "github.com/imamnura/mini-ecommerce-api/controllers/browse"
	"github.com/imamnura/mini-ecommerce-api/listing"
	"github.com/imamnura/mini-ecommerce-api/mail"
	"github.com/imamnura/mini-ecommerce-api/routes"
)

func main() {
	log.Println("✅ Starting mini-ecommerce API...")

	// Load environment variables
	_ = godotenv.Load()

	// Directories
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = filepath.Join(dataDir, "uploads")
	}

	// Collaborators
	api := catalog.NewClient(os.Getenv("CATALOG_API_URL"))
	carts := cart.NewRegistry(initSnapshotStore(dataDir))
	browse := browsecontroller.NewManager(api, listing.DefaultPageSize, listing.DefaultDebounce)
	mailer := mail.NewMailer(os.Getenv("SENDGRID_API_KEY"), os.Getenv("EMAIL_FROM"))

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded images
	r.Static("/uploads", uploadDir)

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		API:       api,
		Carts:     carts,
		Browse:    browse,
		Mailer:    mailer,
		UploadDir: uploadDir,
	})

	// Back up cart snapshots daily at 2 AM, keep 4 days of backups
	go startDailyBackupAtFixedTime(
		filepath.Join(dataDir, "carts"),
		filepath.Join(dataDir, "backup"),
		4*24*time.Hour, 2, 0,
	)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initSnapshotStore picks where cart snapshots live: a database when
// DATABASE_URL is set, plain JSON files under the data dir otherwise.
func initSnapshotStore(dataDir string) cart.SnapshotStore {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		store, err := cart.NewGormSnapshotStore(db)
		if err != nil {
			log.Fatalf("❌ Snapshot table migration failed: %v", err)
		}
		return store
	}

	store, err := cart.NewFileSnapshotStore(filepath.Join(dataDir, "carts"))
	if err != nil {
		log.Fatalf("❌ Snapshot dir init failed: %v", err)
	}
	return store
}

// startDailyBackupAtFixedTime copies the snapshot dir daily at a fixed hour
// and removes backups older than the retention window.
func startDailyBackupAtFixedTime(srcDir, backupDir string, retention time.Duration, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Printf("⏳ Next snapshot backup scheduled at: %s", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		timestamp := time.Now().Format("2006-01-02_15-04-05")
		destDir := filepath.Join(backupDir, timestamp)

		if err := copyDir(srcDir, destDir); err != nil {
			log.Printf("❌ Failed to back up snapshots: %v", err)
		} else {
			log.Printf("✅ Snapshots backed up to %s", destDir)
		}

		cleanupOldBackups(backupDir, retention)
	}
}

// copyDir recursively copies a folder
func copyDir(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, destPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, destPath); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// cleanupOldBackups removes timestamped backup folders older than retention
func cleanupOldBackups(backupDir string, retention time.Duration) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-retention)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ts, err := time.ParseInLocation("2006-01-02_15-04-05", entry.Name(), time.Local)
		if err != nil {
			continue
		}
		if ts.Before(cutoff) {
			path := filepath.Join(backupDir, entry.Name())
			if err := os.RemoveAll(path); err != nil {
				log.Printf("❌ Failed to remove old backup %s: %v", path, err)
			} else {
				log.Printf("🧹 Removed old backup %s", path)
			}
		}
	}
}
