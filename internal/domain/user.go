package domain

// User Model
type User struct {
	ID       uint    `gorm:"primaryKey"`      // Primary key
	Username string  `gorm:"unique;not null"` // Unique username
	Password string  `gorm:"not null"`        // Hashed password
	Pixels   []Pixel // Pixels placed by this user
}
