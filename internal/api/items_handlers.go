package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matthewp/lodge/internal/database"
	"github.com/matthewp/lodge/internal/models"
)

type itemResponse struct {
	ID           int                    `json:"id"`
	CollectionID int                    `json:"collectionId"`
	Slug         string                 `json:"slug,omitempty"`
	Data         map[string]interface{} `json:"data"`
	Status       string                 `json:"status"`
	CreatedBy    *int                   `json:"createdBy,omitempty"`
	CreatedAt    string                 `json:"createdAt"`
	UpdatedAt    string                 `json:"updatedAt"`
}

func toItemResponse(item *models.Item) itemResponse {
	resp := itemResponse{
		ID:           item.ID,
		CollectionID: item.CollectionID,
		Status:       item.Status,
		CreatedAt:    item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    item.UpdatedAt.Format(time.RFC3339),
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(item.Data), &data); err != nil {
		log.Printf("Warning: failed to parse item data as JSON for item %d: %v", item.ID, err)
		data = map[string]interface{}{}
	}
	resp.Data = data

	if item.Slug.Valid {
		resp.Slug = item.Slug.String
	}
	if item.CreatedBy.Valid {
		createdBy := int(item.CreatedBy.Int64)
		resp.CreatedBy = &createdBy
	}
	return resp
}

type itemRequest struct {
	Slug   string                 `json:"slug"`
	Data   map[string]interface{} `json:"data"`
	Status string                 `json:"status"`
}

func (s *Server) handleListItems(c *gin.Context) {
	collectionID, err := strconv.Atoi(c.Param("collectionId"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	items, err := s.db.GetItemsByCollection(collectionID)
	if err != nil {
		log.Printf("Error getting items for collection %d: %v", collectionID, err)
		sendError(c, http.StatusInternalServerError, "Failed to get items")
		return
	}

	response := []itemResponse{}
	for i := range items {
		response = append(response, toItemResponse(&items[i]))
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) handleCreateItem(c *gin.Context) {
	collectionID, err := strconv.Atoi(c.Param("collectionId"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	dataJSON, err := json.Marshal(req.Data)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to encode data")
		return
	}
	if req.Status == "" {
		req.Status = "draft"
	}

	item, err := s.db.CreateItem(collectionID, req.Slug, string(dataJSON), req.Status, currentUser(c).ID)
	if err != nil {
		log.Printf("Error creating item: %v", err)
		sendError(c, http.StatusInternalServerError, "Failed to create item")
		return
	}
	c.JSON(http.StatusOK, toItemResponse(item))
}

func (s *Server) handleGetItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	item, err := s.db.GetItem(itemID)
	if err != nil {
		log.Printf("Error getting item %d: %v", itemID, err)
		sendError(c, http.StatusInternalServerError, "Failed to get item")
		return
	}
	if item == nil {
		sendError(c, http.StatusNotFound, "Item not found")
		return
	}
	c.JSON(http.StatusOK, toItemResponse(item))
}

func (s *Server) handleUpdateItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	dataJSON, err := json.Marshal(req.Data)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to encode data")
		return
	}

	if err := s.db.UpdateItem(itemID, req.Slug, string(dataJSON), req.Status); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			sendError(c, http.StatusNotFound, "Item not found")
			return
		}
		log.Printf("Error updating item %d: %v", itemID, err)
		sendError(c, http.StatusInternalServerError, "Failed to update item")
		return
	}

	item, err := s.db.GetItem(itemID)
	if err != nil || item == nil {
		log.Printf("Error getting updated item %d: %v", itemID, err)
		sendError(c, http.StatusInternalServerError, "Failed to get updated item")
		return
	}
	c.JSON(http.StatusOK, toItemResponse(item))
}

func (s *Server) handleDeleteItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	if err := s.db.DeleteItem(itemID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			sendError(c, http.StatusNotFound, "Item not found")
			return
		}
		log.Printf("Error deleting item %d: %v", itemID, err)
		sendError(c, http.StatusInternalServerError, "Failed to delete item")
		return
	}
	sendMessage(c, "Item deleted successfully")
}
