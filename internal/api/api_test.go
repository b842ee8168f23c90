package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"pixel_map/internal/config"
	"pixel_map/internal/db"
	"pixel_map/internal/middleware"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq int64

// newTestDB opens a uniquely named shared in-memory SQLite database with
// the schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:apitest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// newTestRouter wires the handlers the same way cmd/server does
func newTestRouter(t *testing.T, gdb *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: "test-secret"}
	r := gin.New()
	r.GET("/", IndexHandler())
	r.POST("/register", RegisterHandler(gdb, cfg))
	r.POST("/login", LoginHandler(gdb, cfg))
	r.POST("/logout", LogoutHandler(cfg))
	apiGroup := r.Group("/api")
	apiGroup.GET("/get_map", GetMapHandler(gdb))
	protected := apiGroup.Group("")
	protected.Use(middleware.SessionAuthMiddleware(cfg.JWTSecret))
	protected.POST("/update_pixels", UpdatePixelsHandler(gdb))
	protected.GET("/user_stats", UserStatsHandler(gdb))
	protected.GET("/next_allowed_time", NextAllowedTimeHandler(gdb))
	return r
}

// doJSON performs a request with a JSON body and optional session cookies
func doJSON(r *gin.Engine, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerUser creates an account and returns its session cookies
func registerUser(t *testing.T, r *gin.Engine, username, password string) []*http.Cookie {
	t.Helper()
	body := fmt.Sprintf(`{"username": %q, "password": %q}`, username, password)
	w := doJSON(r, http.MethodPost, "/register", body, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "registration should establish a session")
	return cookies
}

// decodeBody unmarshals a JSON response body into a generic map
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
