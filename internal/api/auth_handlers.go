package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.db.VerifyUserPassword(req.Username, req.Password); err != nil {
		sendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	user, err := s.db.GetUserByUsername(req.Username)
	if err != nil || user == nil {
		sendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.jwt.GenerateToken(user.Username, user.Role)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, loginResponse{Success: true, Token: token})
}

func (s *Server) handleLogout(c *gin.Context) {
	// Tokens are stateless; the client discards its copy.
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleMe(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"role":     user.Role,
	})
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.db.GetStats()
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
