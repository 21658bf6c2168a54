package handlers

import (
	"net/http"

	"greengarden/models"

	"github.com/gin-gonic/gin"
)

// Catalog exposes the loaded menu.
type Catalog interface {
	Catalog() []models.MenuItem
}

// MenuHandler returns a handler for GET /api/menu.
func MenuHandler(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := catalog.Catalog()
		if items == nil {
			items = []models.MenuItem{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}
