package api

import (
	"net/http"
	"pixel_map/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	gdb := newTestDB(t)
	r := newTestRouter(t, gdb)

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"missing fields", `{"username": "alice"}`, "Invalid data"},
		{"malformed body", `not json`, "Invalid data"},
		{"short username", `{"username": "al", "password": "secret1"}`, "Username must be at least 3 characters and password must be at least 6 characters"},
		{"short password", `{"username": "alice", "password": "12345"}`, "Username must be at least 3 characters and password must be at least 6 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/register", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.msg, decodeBody(t, w)["message"])
		})
	}

	// None of the rejected attempts created a user
	var count int64
	require.NoError(t, gdb.Model(&domain.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	gdb := newTestDB(t)
	r := newTestRouter(t, gdb)

	registerUser(t, r, "alice", "secret1")

	w := doJSON(r, http.MethodPost, "/register", `{"username": "alice", "password": "other-secret"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username already exists", decodeBody(t, w)["message"])

	// Exactly one user row exists afterward
	var count int64
	require.NoError(t, gdb.Model(&domain.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	gdb := newTestDB(t)
	r := newTestRouter(t, gdb)

	registerUser(t, r, "alice", "secret1")

	var user domain.User
	require.NoError(t, gdb.Where("username = ?", "alice").First(&user).Error)
	assert.NotEqual(t, "secret1", user.Password)
	assert.NotEmpty(t, user.Password)
}

func TestLogin(t *testing.T) {
	gdb := newTestDB(t)
	r := newTestRouter(t, gdb)
	registerUser(t, r, "alice", "secret1")

	t.Run("correct credentials", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/login", `{"username": "alice", "password": "secret1"}`, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Login successful", decodeBody(t, w)["message"])
		assert.NotEmpty(t, w.Result().Cookies(), "login should establish a session")
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/login", `{"username": "alice", "password": "wrong-pass"}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid credentials", decodeBody(t, w)["message"])
	})

	t.Run("unknown username", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/login", `{"username": "nobody", "password": "secret1"}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid credentials", decodeBody(t, w)["message"])
	})

	t.Run("missing fields", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/login", `{}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid data", decodeBody(t, w)["message"])
	})
}

func TestLogoutIsIdempotent(t *testing.T) {
	gdb := newTestDB(t)
	r := newTestRouter(t, gdb)

	// Without a session
	w := doJSON(r, http.MethodPost, "/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logout successful", decodeBody(t, w)["message"])

	// With a session
	cookies := registerUser(t, r, "alice", "secret1")
	w = doJSON(r, http.MethodPost, "/logout", "", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logout successful", decodeBody(t, w)["message"])
}

func TestProtectedEndpointsRequireSession(t *testing.T) {
	gdb := newTestDB(t)
	r := newTestRouter(t, gdb)

	for _, ep := range []struct{ method, path string }{
		{http.MethodPost, "/api/update_pixels"},
		{http.MethodGet, "/api/user_stats"},
		{http.MethodGet, "/api/next_allowed_time"},
	} {
		w := doJSON(r, ep.method, ep.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", ep.method, ep.path)
	}
}

func TestIndexListsEndpoints(t *testing.T) {
	gdb := newTestDB(t)
	r := newTestRouter(t, gdb)

	w := doJSON(r, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body, "endpoints")
	assert.Contains(t, body["message"], "Pixel Map Backend")
}
