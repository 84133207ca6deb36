package handler

import (
	"net/http"

	"aura/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// Register creates an account and returns a session token.
func (h *Handler) Register(c *gin.Context) {
	var in auth.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.bindError(c, err)
		return
	}

	result, err := h.Auth.Register(c.Request.Context(), in)
	if err != nil {
		h.respond(c, err, "error.internal")
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) Login(c *gin.Context) {
	var in auth.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.bindError(c, err)
		return
	}

	result, err := h.Auth.Login(c.Request.Context(), in)
	if err != nil {
		h.respond(c, err, "error.internal")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.Auth.Logout(c.Request.Context(), currentSession(c).ID); err != nil {
		h.respond(c, err, "error.internal")
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the caller's session.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c))
}
