package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type analyzeRequest struct {
	Description  string `json:"description" binding:"required"`
	PropertyID   string `json:"propertyId"`
	PropertyName string `json:"propertyName"`
}

// Analyze previews the triage for a description without filing anything.
func (h *Handler) Analyze(c *gin.Context) {
	var in analyzeRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		h.bindError(c, err)
		return
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		h.fieldRule(c, "description", "required")
		return
	}

	name := strings.TrimSpace(in.PropertyName)
	if id := strings.TrimSpace(in.PropertyID); id != "" {
		if property, err := h.Catalog.Get(id); err == nil {
			name = property.Name
		}
	}

	c.JSON(http.StatusOK, h.Analyzer.AnalyzeComplaint(c.Request.Context(), description, name))
}
