package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/matthewp/lodge/internal/auth"
	"github.com/matthewp/lodge/internal/models"
)

const (
	contextUserKey   = "currentUser"
	contextAPIKeyKey = "apiKey"
)

// RequestID attaches a request identifier to every response for log
// correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// requireAuth validates the Bearer token and loads the current user into
// the context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.TokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			sendError(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		claims, err := s.jwt.ValidateToken(token)
		if err != nil {
			sendError(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		user, err := s.db.GetUserByUsername(claims.Username)
		if err != nil || user == nil {
			sendError(c, http.StatusNotFound, "User not found")
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// requireAPIKey validates the X-API-Key header for the public content API.
func (s *Server) requireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-API-Key")
		if header == "" {
			sendError(c, http.StatusUnauthorized, "Invalid or missing API key")
			c.Abort()
			return
		}

		key, err := s.db.ValidateAPIKey(header)
		if err != nil || key == nil {
			sendError(c, http.StatusUnauthorized, "Invalid or missing API key")
			c.Abort()
			return
		}

		c.Set(contextAPIKeyKey, key)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(contextUserKey).(*models.User)
}
