package domain

import "time"

// Pixel Model
type Pixel struct {
	ID       uint      `gorm:"primaryKey"` // Primary key
	Lat      float64   `gorm:"not null"`   // Latitude
	Lng      float64   `gorm:"not null"`   // Longitude
	Color    string    `gorm:"not null"`   // Color token, e.g. a hex code
	UserID   *uint     // Foreign key to the owning User
	PlacedAt time.Time `gorm:"not null"` // Placement timestamp, UTC
}
