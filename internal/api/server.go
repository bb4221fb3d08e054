// Package api wires the Lodge HTTP surface: the JSON admin API, the
// API-key-protected public content API, and the embedded admin UI.
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matthewp/lodge/internal/auth"
	"github.com/matthewp/lodge/internal/config"
	"github.com/matthewp/lodge/internal/database"
	"github.com/matthewp/lodge/internal/ui"
)

// Server holds the handler dependencies.
type Server struct {
	db  *database.DB
	jwt *auth.JWTManager
	cfg *config.Config
}

func NewServer(cfg *config.Config, db *database.DB) *Server {
	return &Server{
		db:  db,
		jwt: auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration),
		cfg: cfg,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID())

	admin := r.Group("/admin-api")
	admin.POST("/login", s.handleLogin)

	authed := admin.Group("", s.requireAuth())
	{
		authed.POST("/logout", s.handleLogout)
		authed.GET("/me", s.handleMe)
		authed.GET("/stats", s.handleStats)

		authed.GET("/users", s.handleListUsers)
		authed.POST("/users", s.handleCreateUser)
		authed.DELETE("/users/:id", s.handleDeleteUser)

		authed.GET("/collections", s.handleListCollections)
		authed.POST("/collections", s.handleCreateCollection)
		authed.GET("/collections/:id/fields", s.handleListFields)
		authed.POST("/collections/:id/fields", s.handleCreateField)

		authed.GET("/items/collection/:collectionId", s.handleListItems)
		authed.POST("/items/collection/:collectionId", s.handleCreateItem)
		authed.GET("/items/:itemId", s.handleGetItem)
		authed.PUT("/items/:itemId", s.handleUpdateItem)
		authed.DELETE("/items/:itemId", s.handleDeleteItem)

		authed.GET("/api-keys", s.handleListAPIKeys)
		authed.POST("/api-keys", s.handleCreateAPIKey)
		authed.DELETE("/api-keys", s.handleDeleteAPIKey)

		authed.GET("/export/:collectionId", s.handleExportCSV)
		authed.POST("/import/:collectionId", s.handleImportCSV)
	}

	public := r.Group("/api", s.requireAPIKey())
	{
		public.GET("/collections/:slug", s.handlePublicCollection)
		public.GET("/collections/:slug/:itemId", s.handlePublicItem)
	}

	// Everything else is the embedded single-page admin UI.
	r.NoRoute(ui.Handler())

	return r
}

// Run starts the HTTP server on the configured address.
func (s *Server) Run() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	host := s.cfg.Server.Host
	if host == "" {
		host = "localhost"
	}
	log.Printf("Lodge CMS starting on http://%s:%d", host, s.cfg.Server.Port)
	return s.Router().Run(addr)
}

func sendError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func sendMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}
