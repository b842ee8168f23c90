package utils

import (
	"net/http" // SameSite constants
	"time"     // Cookie lifetime

	"github.com/gin-gonic/gin" // Gin web framework
)

// SessionCookieName is the cookie carrying the signed session token
const SessionCookieName = "pixelmap_session"

// SessionTTL is how long a session (and its token) stays valid
const SessionTTL = 24 * time.Hour

// SetSessionCookie attaches the session token to the response.
// Cross-origin requests with credentials require SameSite=None, which
// browsers only accept on secure cookies, so that combination is reserved
// for production.
func SetSessionCookie(c *gin.Context, token string, secure bool) {
	if secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(SessionCookieName, token, int(SessionTTL.Seconds()), "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie immediately
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
