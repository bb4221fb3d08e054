package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matthewp/lodge/internal/database"
)

type apiKeyResponse struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	KeyPrefix  string `json:"keyPrefix"`
	CreatedAt  string `json:"createdAt"`
	LastUsedAt string `json:"lastUsedAt,omitempty"`
	IsActive   bool   `json:"isActive"`
}

func (s *Server) handleListAPIKeys(c *gin.Context) {
	keys, err := s.db.GetAPIKeys()
	if err != nil {
		log.Printf("Error getting API keys: %v", err)
		sendError(c, http.StatusInternalServerError, "Failed to fetch API keys")
		return
	}

	// Hashes never leave the server.
	response := []apiKeyResponse{}
	for _, key := range keys {
		resp := apiKeyResponse{
			ID:        key.ID,
			Name:      key.Name,
			KeyPrefix: key.KeyPrefix,
			CreatedAt: key.CreatedAt.Format(timestampLayout),
			IsActive:  key.IsActive,
		}
		if key.LastUsedAt.Valid {
			resp.LastUsedAt = key.LastUsedAt.Time.Format(timestampLayout)
		}
		response = append(response, resp)
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) handleCreateAPIKey(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		sendError(c, http.StatusBadRequest, "Name is required")
		return
	}

	fullKey, err := s.db.CreateAPIKey(req.Name, currentUser(c).ID)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to create API key")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"key":     fullKey,
		"message": "API key created successfully. Store this key securely - it won't be shown again.",
	})
}

func (s *Server) handleDeleteAPIKey(c *gin.Context) {
	idStr := c.Query("id")
	if idStr == "" {
		sendError(c, http.StatusBadRequest, "ID parameter is required")
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid ID parameter")
		return
	}

	if err := s.db.DeleteAPIKey(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			sendError(c, http.StatusNotFound, "API key not found")
			return
		}
		sendError(c, http.StatusInternalServerError, "Failed to delete API key")
		return
	}
	sendMessage(c, "API key deleted successfully")
}
