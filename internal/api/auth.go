package api

import (
	"net/http"                  // HTTP status codes
	"pixel_map/internal/config" // Application configuration
	"pixel_map/internal/domain" // Importing domain models
	"pixel_map/internal/utils"  // Utility functions
	"strings"                   // Error message inspection

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// CredentialsRequest is the body of both register and login calls
type CredentialsRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Minimum credential lengths enforced at registration
const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// isUniqueConstraintErr reports whether err is a SQLite unique-constraint
// violation
func isUniqueConstraintErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// RegisterHandler creates a new user account and logs it in
func RegisterHandler(gdb *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid data"})
			return
		}
		// Validate credential lengths
		if len(req.Username) < minUsernameLen || len(req.Password) < minPasswordLen {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username must be at least 3 characters and password must be at least 6 characters"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
			return
		}
		user := domain.User{Username: req.Username, Password: string(hash)}
		// Attempt to create the user in the database
		if err := gdb.Create(&user).Error; err != nil {
			// Map the unique-constraint violation to a conflict response
			if isUniqueConstraintErr(err) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"username": req.Username, // Requested username
				"error":    err.Error(),  // Error message
			}).Error("Registration failed") // Log registration failure
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
			return
		}
		// Establish a session for the new account
		token, err := utils.GenerateJWT(user.ID, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to establish session"})
			return
		}
		utils.SetSessionCookie(c, token, cfg.IsProd) // Set the session cookie
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Registration successful"})
	}
}

// LoginHandler authenticates a user and establishes a session
func LoginHandler(gdb *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid data"})
			return
		}
		var user domain.User // Fetch user from database
		if err := gdb.Where("username = ?", req.Username).First(&user).Error; err != nil {
			// Unknown username and bad password are indistinguishable to the client
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			return
		}
		// Establish the session
		token, err := utils.GenerateJWT(user.ID, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to establish session"})
			return
		}
		utils.SetSessionCookie(c, token, cfg.IsProd) // Set the session cookie
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
	}
}

// LogoutHandler terminates the session if one is active. Idempotent:
// reports success whether or not a session existed.
func LogoutHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.ClearSessionCookie(c, cfg.IsProd) // Expire the session cookie
		c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
	}
}
