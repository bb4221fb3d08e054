package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

// handlePublicCollection serves GET /api/collections/:slug with pagination.
func (s *Server) handlePublicCollection(c *gin.Context) {
	slug := c.Param("slug")

	collection, err := s.db.GetCollectionBySlug(slug)
	if err != nil {
		log.Printf("Error getting collection by slug %q: %v", slug, err)
		sendError(c, http.StatusInternalServerError, "Failed to get collection")
		return
	}
	if collection == nil {
		sendError(c, http.StatusNotFound, "Collection not found")
		return
	}

	limit := defaultPageLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		if v > maxPageLimit {
			v = maxPageLimit
		}
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	}

	items, err := s.db.GetItemsByCollectionWithPagination(collection.ID, limit, offset)
	if err != nil {
		log.Printf("Error getting items for collection %q: %v", slug, err)
		sendError(c, http.StatusInternalServerError, "Failed to get items")
		return
	}

	response := []itemResponse{}
	for i := range items {
		if !publiclyVisible(items[i].Status) {
			continue
		}
		response = append(response, toItemResponse(&items[i]))
	}
	c.JSON(http.StatusOK, response)
}

// publiclyVisible reports whether an item status may be served on the
// public API. Drafts are included for now; this can be made configurable.
func publiclyVisible(status string) bool {
	return status == "published" || status == "draft"
}

// handlePublicItem serves GET /api/collections/:slug/:itemId.
func (s *Server) handlePublicItem(c *gin.Context) {
	slug := c.Param("slug")

	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	collection, err := s.db.GetCollectionBySlug(slug)
	if err != nil {
		log.Printf("Error getting collection by slug %q: %v", slug, err)
		sendError(c, http.StatusInternalServerError, "Failed to get collection")
		return
	}
	if collection == nil {
		sendError(c, http.StatusNotFound, "Collection not found")
		return
	}

	item, err := s.db.GetItem(itemID)
	if err != nil {
		log.Printf("Error getting item %d: %v", itemID, err)
		sendError(c, http.StatusInternalServerError, "Failed to get item")
		return
	}
	if item == nil || item.CollectionID != collection.ID {
		sendError(c, http.StatusNotFound, "Item not found in this collection")
		return
	}
	if !publiclyVisible(item.Status) {
		sendError(c, http.StatusNotFound, "Item not available")
		return
	}

	c.JSON(http.StatusOK, toItemResponse(item))
}
