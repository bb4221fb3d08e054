package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matthewp/lodge/internal/models"
)

type collectionResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toCollectionResponse(col *models.Collection) collectionResponse {
	resp := collectionResponse{
		ID:        col.ID,
		Name:      col.Name,
		Slug:      col.Slug,
		CreatedAt: col.CreatedAt.Format(timestampLayout),
		UpdatedAt: col.UpdatedAt.Format(timestampLayout),
	}
	if col.Description.Valid {
		resp.Description = col.Description.String
	}
	return resp
}

func (s *Server) handleListCollections(c *gin.Context) {
	collections, err := s.db.GetCollections()
	if err != nil {
		log.Printf("Error getting collections: %v", err)
		sendError(c, http.StatusInternalServerError, "Failed to fetch collections")
		return
	}

	response := []collectionResponse{}
	for i := range collections {
		response = append(response, toCollectionResponse(&collections[i]))
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) handleCreateCollection(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Slug == "" {
		sendError(c, http.StatusBadRequest, "Name and slug are required")
		return
	}

	collection, err := s.db.CreateCollection(req.Name, req.Slug, req.Description)
	if err != nil {
		log.Printf("Error creating collection: %v", err)
		sendError(c, http.StatusInternalServerError, "Failed to create collection")
		return
	}
	c.JSON(http.StatusCreated, toCollectionResponse(collection))
}

type fieldResponse struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Label        string `json:"label"`
	Type         string `json:"type"`
	Required     bool   `json:"required"`
	Placeholder  string `json:"placeholder"`
	DefaultValue string `json:"defaultValue"`
	SortOrder    int    `json:"sortOrder"`
}

func toFieldResponse(f *models.CollectionField) fieldResponse {
	resp := fieldResponse{
		ID:        f.ID,
		Name:      f.Name,
		Label:     f.Label,
		Type:      f.Type,
		Required:  f.Required,
		SortOrder: f.SortOrder,
	}
	if f.Placeholder.Valid {
		resp.Placeholder = f.Placeholder.String
	}
	if f.DefaultValue.Valid {
		resp.DefaultValue = f.DefaultValue.String
	}
	return resp
}

// collectionFromParam resolves the :id path segment, writing the error
// response itself when resolution fails.
func (s *Server) collectionFromParam(c *gin.Context, param string) *models.Collection {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid collection ID")
		return nil
	}

	collection, err := s.db.GetCollectionByID(id)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to verify collection")
		return nil
	}
	if collection == nil {
		sendError(c, http.StatusNotFound, "Collection not found")
		return nil
	}
	return collection
}

func (s *Server) handleListFields(c *gin.Context) {
	collection := s.collectionFromParam(c, "id")
	if collection == nil {
		return
	}

	fields, err := s.db.GetCollectionFields(collection.ID)
	if err != nil {
		log.Printf("Error getting collection fields: %v", err)
		sendError(c, http.StatusInternalServerError, "Failed to fetch fields")
		return
	}

	response := []fieldResponse{}
	for i := range fields {
		response = append(response, toFieldResponse(&fields[i]))
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) handleCreateField(c *gin.Context) {
	collection := s.collectionFromParam(c, "id")
	if collection == nil {
		return
	}

	var req struct {
		Name         string `json:"name"`
		Label        string `json:"label"`
		Type         string `json:"type"`
		Required     bool   `json:"required"`
		Placeholder  string `json:"placeholder"`
		DefaultValue string `json:"defaultValue"`
		SortOrder    int    `json:"sortOrder"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Label == "" || req.Type == "" {
		sendError(c, http.StatusBadRequest, "Name, label, and type are required")
		return
	}

	field, err := s.db.CreateCollectionField(collection.ID, req.Name, req.Label, req.Type, req.Required, req.Placeholder, req.DefaultValue, req.SortOrder)
	if err != nil {
		log.Printf("Error creating collection field: %v", err)
		sendError(c, http.StatusInternalServerError, "Failed to create field")
		return
	}
	c.JSON(http.StatusCreated, toFieldResponse(field))
}
