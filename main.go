package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"health-bridge-server/internal/config"
	"health-bridge-server/internal/models"
	"health-bridge-server/internal/realtime"
	"health-bridge-server/internal/routes"
	"health-bridge-server/internal/seed"
)

func main() {
	// Load environment variables; a missing .env is fine outside development
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Create a DatabaseConfig for models
	modelDbConfig := models.DatabaseConfig{
		DSN: cfg.Database.DSN,
	}

	// Initialize database connection
	db, err := models.InitDB(modelDbConfig)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	// Seed demo data on an empty database
	if cfg.SeedDemoData {
		if err := seed.DemoData(db); err != nil {
			log.Printf("Error seeding demo data: %v", err)
		}
	}

	// Ensure the voice-note upload directory exists
	voiceNotesDir := filepath.Join(cfg.UploadDir, "voice-notes")
	if err := os.MkdirAll(voiceNotesDir, 0o755); err != nil {
		log.Fatalf("Error creating upload directory: %v", err)
	}

	// Initialize Gin router
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Serve uploaded files at a predictable public path
	router.Static("/uploads", cfg.UploadDir)

	// The websocket hub fans mutation events out to connected dashboards
	hub := realtime.NewHub()

	// Set up routes - passing DB, hub and config to let routes.go create the handlers
	routes.SetupRoutes(router, db, hub, cfg)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Printf("Server running on port %s\n", cfg.Port)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
