package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewp/lodge/internal/config"
	"github.com/matthewp/lodge/internal/database"
)

func newTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.New(filepath.Join(t.TempDir(), "lodge-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.CreateUser("admin", "admin", "", "admin"))

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenDuration = time.Hour

	srv := NewServer(cfg, db)
	return srv, srv.Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func loginAsAdmin(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/admin-api/login", "", map[string]string{
		"username": "admin",
		"password": "admin",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLogin(t *testing.T) {
	_, router := newTestServer(t)

	t.Run("valid credentials return a token", func(t *testing.T) {
		token := loginAsAdmin(t, router)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/admin-api/login", "", map[string]string{
			"username": "admin",
			"password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	})

	t.Run("unknown user is rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/admin-api/login", "", map[string]string{
			"username": "ghost",
			"password": "admin",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin-api/login", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	_, router := newTestServer(t)
	token := loginAsAdmin(t, router)

	t.Run("me returns the current user", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/admin-api/me", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"admin"`)
		assert.Contains(t, w.Body.String(), `"role":"admin"`)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/admin-api/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/admin-api/me", "not.a.token", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("logout succeeds with a valid token", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/admin-api/logout", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("responses carry a request id", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/admin-api/me", token, nil)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestStats(t *testing.T) {
	_, router := newTestServer(t)
	token := loginAsAdmin(t, router)

	w := doJSON(t, router, http.MethodGet, "/admin-api/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats["users"])
	assert.Equal(t, 0, stats["collections"])
}

func TestUsersEndpoints(t *testing.T) {
	_, router := newTestServer(t)
	token := loginAsAdmin(t, router)

	t.Run("list includes the admin", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/admin-api/users", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"admin"`)
	})

	t.Run("create and delete a user", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/admin-api/users", token, map[string]string{
			"username": "editor",
			"password": "secret",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created struct {
			ID   int    `json:"id"`
			Role string `json:"role"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, "editor", created.Role)

		w = doJSON(t, router, http.MethodDelete, "/admin-api/users/"+strconv.Itoa(created.ID), token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("self-deletion is blocked", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/admin-api/users", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var users []struct {
			ID       int    `json:"id"`
			Username string `json:"username"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))

		var adminID int
		for _, u := range users {
			if u.Username == "admin" {
				adminID = u.ID
			}
		}
		require.NotZero(t, adminID)

		w = doJSON(t, router, http.MethodDelete, "/admin-api/users/"+strconv.Itoa(adminID), token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing user yields 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/admin-api/users/99999", token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
