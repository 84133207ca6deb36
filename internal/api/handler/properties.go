package handler

import (
	"net/http"

	"aura/backend/internal/catalog"

	"github.com/gin-gonic/gin"
)

// ListProperties searches the catalog by ?q=, ?bedrooms= and ?price=.
func (h *Handler) ListProperties(c *gin.Context) {
	var filter catalog.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.bindError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Catalog.Search(filter))
}

func (h *Handler) GetProperty(c *gin.Context) {
	property, err := h.Catalog.Get(c.Param("id"))
	if err != nil {
		h.respond(c, err, "error.property_not_found")
		return
	}
	c.JSON(http.StatusOK, property)
}
