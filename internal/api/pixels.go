package api

import (
	"errors"                    // Sentinel errors
	"net/http"                  // HTTP status codes
	"pixel_map/internal/domain" // Importing domain models
	"pixel_map/internal/utils"  // Utility functions
	"time"                      // Timestamps and the cooldown window

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// PlacementCooldown is the interval a user must wait between successful
// placement batches
const PlacementCooldown = 10 * time.Minute

// errCooldownActive aborts the placement transaction when the gate rejects
var errCooldownActive = errors.New("placement cooldown active")

// PixelSubmission is one pixel in an update_pixels batch
type PixelSubmission struct {
	Lat   float64 `json:"lat"`   // Latitude
	Lng   float64 `json:"lng"`   // Longitude
	Color string  `json:"color"` // Color token
}

// UpdatePixelsRequest is the body of an update_pixels call. The pixels
// field must be present but may be empty; a "required" binding tag would
// reject the empty batch.
type UpdatePixelsRequest struct {
	Pixels []PixelSubmission `json:"pixels"` // Batch of pixels to place
}

// UpdatePixelsHandler places a batch of pixels for the authenticated user,
// subject to the cooldown. The gate evaluates once for the whole batch and
// either every row is inserted or none is.
func UpdatePixelsHandler(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		uid := userID.(uint)
		var req UpdatePixelsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || req.Pixels == nil {
			// If binding fails or the pixels field is missing, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid data"})
			return
		}
		now := time.Now().UTC()   // Single timestamp for the whole batch
		var nextAllowed time.Time // Reported when the cooldown rejects
		// Cooldown gate and batch insert run in one transaction
		err := gdb.Transaction(func(tx *gorm.DB) error {
			var last domain.Pixel // Most recent pixel placed by this user
			err := tx.Where("user_id = ?", uid).Order("placed_at DESC").First(&last).Error
			if err == nil {
				// A previous placement exists; enforce the cooldown
				if now.Sub(last.PlacedAt) < PlacementCooldown {
					nextAllowed = last.PlacedAt.Add(PlacementCooldown)
					return errCooldownActive // Reject before any insertion
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err // Unexpected store error
			}
			// Insert one row per submitted pixel, all stamped with the same now
			rows := make([]domain.Pixel, len(req.Pixels))
			for i, p := range req.Pixels {
				rows[i] = domain.Pixel{
					Lat:      p.Lat,   // Latitude as given
					Lng:      p.Lng,   // Longitude as given
					Color:    p.Color, // Color as given
					UserID:   &uid,    // Attributed to the caller
					PlacedAt: now,     // Shared batch timestamp
				}
			}
			// An empty batch passes the gate and inserts nothing
			if len(rows) > 0 {
				if err := tx.Create(&rows).Error; err != nil {
					return err // Roll back the whole batch
				}
			}
			return nil // Commit
		})
		// Cooldown rejection: report when the user may place again
		if errors.Is(err, errCooldownActive) {
			c.JSON(http.StatusForbidden, gin.H{
				"message":           "You need to wait before placing another pixel",
				"next_allowed_time": nextAllowed.UTC().Format(time.RFC3339),
			})
			return
		}
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": uid,             // User ID
				"pixels":  len(req.Pixels), // Batch size
				"error":   err.Error(),     // Error message
			}).Error("Pixel placement failed") // Log placement failure
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to place pixels"})
			return
		}
		// Log successful placement
		logrus.WithFields(logrus.Fields{
			"user_id":   uid,                      // User ID
			"pixels":    len(req.Pixels),          // Batch size
			"placed_at": now.Format(time.RFC3339), // Batch timestamp
		}).Info("Pixels placed") // Log placement success
		// Return success response with the next allowed placement time
		c.JSON(http.StatusOK, gin.H{
			"status":            "success",
			"user_id":           uid,
			"next_allowed_time": now.Add(PlacementCooldown).Format(time.RFC3339),
		})
	}
}

// MapPixel is one entry of the aggregate map
type MapPixel struct {
	Lat      float64   `json:"lat"`       // Latitude
	Lng      float64   `json:"lng"`       // Longitude
	Color    string    `json:"color"`     // Color token
	UserID   uint      `json:"user_id"`   // Owning user
	PlacedAt time.Time `json:"placed_at"` // Placement timestamp
	Username string    `json:"username"`  // Owning user's name
}

// GetMapHandler returns every pixel whose owning user exists, joined with
// the owner's username. Order is not guaranteed.
func GetMapHandler(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		pixels := make([]MapPixel, 0) // Map entries to return
		// Inner join excludes pixels without a matching user
		if err := gdb.Table("pixels").
			Select("pixels.lat, pixels.lng, pixels.color, pixels.user_id, pixels.placed_at, users.username").
			Joins("JOIN users ON users.id = pixels.user_id").
			Scan(&pixels).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch map"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"pixels": pixels}) // Return the map
	}
}

// PlacedPixel is one entry of a user's placement history in user_stats
type PlacedPixel struct {
	Lat   float64 `json:"lat"`   // Latitude
	Lng   float64 `json:"lng"`   // Longitude
	Color string  `json:"color"` // Color token
}

// UserStatsHandler returns per-user and world-wide placement statistics
func UserStatsHandler(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		uid := userID.(uint)
		var totalPixels int64 // Pixels placed by this user
		if err := gdb.Model(&domain.Pixel{}).Where("user_id = ?", uid).Count(&totalPixels).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
			return
		}
		var uniqueColors int64 // Distinct colors used by this user
		if err := gdb.Model(&domain.Pixel{}).Where("user_id = ?", uid).Distinct("color").Count(&uniqueColors).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
			return
		}
		placed := make([]PlacedPixel, 0) // Full placement history for this user
		if err := gdb.Model(&domain.Pixel{}).
			Select("lat, lng, color").
			Where("user_id = ?", uid).
			Scan(&placed).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
			return
		}
		var worldPixels int64 // Total pixels across all users
		if err := gdb.Model(&domain.Pixel{}).Count(&worldPixels).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
			return
		}
		var usersWithPixels int64 // Distinct users who placed at least one pixel
		if err := gdb.Model(&domain.Pixel{}).
			Where("user_id IS NOT NULL").
			Distinct("user_id").
			Count(&usersWithPixels).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
			return
		}
		// Return the aggregated stats; large counts are humanized
		c.JSON(http.StatusOK, gin.H{
			"totalPixelsPlaced":      utils.HumanizeLargeNumber(totalPixels),
			"totalUniqueColors":      uniqueColors,
			"placedPixels":           placed,
			"totalWorldPixelsPlaced": utils.HumanizeLargeNumber(worldPixels),
			"totalUsersWithPixels":   utils.HumanizeLargeNumber(usersWithPixels),
			"percentagePixelsPlaced": utils.PercentagePixelsPlaced(worldPixels),
		})
	}
}

// NextAllowedTimeHandler reports when the authenticated user may place
// pixels next: last placement plus the cooldown, or now if they never
// placed any.
func NextAllowedTimeHandler(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		uid := userID.(uint)
		nextAllowed := time.Now().UTC() // No pixels yet means no wait
		var last domain.Pixel           // Most recent pixel placed by this user
		err := gdb.Where("user_id = ?", uid).Order("placed_at DESC").First(&last).Error
		if err == nil {
			nextAllowed = last.PlacedAt.Add(PlacementCooldown)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch next allowed time"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"next_allowed_time": nextAllowed.UTC().Format(time.RFC3339)})
	}
}
