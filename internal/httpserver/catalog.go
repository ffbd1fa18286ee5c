package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kleanly/internal/domain"
)

func listItemsHandler(repo catalogReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := domain.Category(c.Query("category"))
		if category != "" && !category.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category", "field": "category"})
			return
		}

		items, err := repo.ListItems(c.Request.Context(), category)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func listBagsHandler(repo catalogReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := domain.Category(c.Query("category"))
		if category != "" && !category.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category", "field": "category"})
			return
		}

		bags, err := repo.ListBags(c.Request.Context(), category)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bags": bags})
	}
}
