package db

import (
	"pixel_map/internal/domain" // Importing domain models

	"gorm.io/driver/sqlite" // SQLite driver for GORM
	"gorm.io/gorm"          // GORM ORM library
)

// Open opens the SQLite database at the given path
func Open(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

// Migrate creates the users and pixels tables if they do not exist.
// Safe to call on every startup.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&domain.User{}, &domain.Pixel{})
}
