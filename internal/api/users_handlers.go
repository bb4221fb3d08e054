package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matthewp/lodge/internal/database"
	"github.com/matthewp/lodge/internal/models"
)

const timestampLayout = "2006-01-02 15:04:05"

type userResponse struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func toUserResponse(u *models.User) userResponse {
	resp := userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(timestampLayout),
	}
	if u.Email.Valid {
		resp.Email = u.Email.String
	}
	return resp
}

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.db.GetUsers()
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	response := []userResponse{}
	for i := range users {
		response = append(response, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		sendError(c, http.StatusBadRequest, "Username and password are required")
		return
	}
	if req.Role == "" {
		req.Role = "editor"
	}

	if err := s.db.CreateUser(req.Username, req.Password, req.Email, req.Role); err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user, err := s.db.GetUserByUsername(req.Username)
	if err != nil || user == nil {
		sendError(c, http.StatusInternalServerError, "Failed to fetch created user")
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	// The last admin standing cannot delete itself.
	if me := currentUser(c); me.ID == id {
		sendError(c, http.StatusBadRequest, "Cannot delete the current user")
		return
	}

	if err := s.db.DeleteUser(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			sendError(c, http.StatusNotFound, "User not found")
			return
		}
		sendError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	sendMessage(c, "User deleted successfully")
}
