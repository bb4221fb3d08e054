// Package ui embeds the admin single-page application.
package ui

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static/index.html
var staticFiles embed.FS

// Handler serves the SPA shell for every non-API route. Client-side hash
// routing takes over from there.
func Handler() gin.HandlerFunc {
	index, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		panic("ui: embedded index.html missing: " + err.Error())
	}
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	}
}
