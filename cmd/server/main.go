package main

import (
	"log"                           // log package is needed for logging
	"pixel_map/internal/api"        // Custom package for API handlers
	"pixel_map/internal/config"     // Custom package for configuration
	"pixel_map/internal/db"         // Custom package for database access
	"pixel_map/internal/middleware" // Custom package for middleware

	"github.com/gin-contrib/cors" // CORS middleware for Gin
	"github.com/gin-gonic/gin"    // Gin web framework
	"github.com/sirupsen/logrus"  // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Open the SQLite database
	gdb, err := db.Open(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Create the schema if it does not exist yet
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Cross-origin requests are allowed only from the configured origins,
	// with credentials so the session cookie is sent
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))

	// Service description
	r.GET("/", api.IndexHandler())

	// Auth routes
	r.POST("/register", api.RegisterHandler(gdb, cfg)) // Registration endpoint
	r.POST("/login", api.LoginHandler(gdb, cfg))       // Login endpoint
	r.POST("/logout", api.LogoutHandler(cfg))          // Logout endpoint

	// API routes
	apiGroup := r.Group("/api")
	apiGroup.GET("/get_map", api.GetMapHandler(gdb)) // Map dump endpoint, no session needed

	// Protected API routes (session required)
	protected := apiGroup.Group("")
	protected.Use(middleware.SessionAuthMiddleware(cfg.JWTSecret))
	protected.POST("/update_pixels", api.UpdatePixelsHandler(gdb))       // Pixel placement endpoint
	protected.GET("/user_stats", api.UserStatsHandler(gdb))              // Statistics endpoint
	protected.GET("/next_allowed_time", api.NextAllowedTimeHandler(gdb)) // Cooldown lookup endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
