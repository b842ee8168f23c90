package main

import (
	"pixel_map/internal/config" // Custom import path (Config)
	"pixel_map/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging library
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Open the SQLite database file
	gdb, err := db.Open(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// Create tables, missing foreign keys, constraints, columns and indexes
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
