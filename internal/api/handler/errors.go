package handler

import (
	"errors"
	"net/http"

	"aura/backend/internal/auth"
	"aura/backend/internal/catalog"
	"aura/backend/internal/complaint"
	"aura/backend/internal/config"
	"aura/backend/internal/reservation"
	"aura/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func (h *Handler) lang(c *gin.Context) string {
	return h.Localizer.Match(c.GetHeader("Accept-Language"))
}

func (h *Handler) message(c *gin.Context, key string, args ...any) string {
	if len(args) == 0 {
		return h.Localizer.GetString(h.lang(c), key)
	}
	return h.Localizer.Format(h.lang(c), key, args...)
}

func (h *Handler) fail(c *gin.Context, status int, key string, args ...any) {
	c.JSON(status, gin.H{"error": h.message(c, key, args...), "code": key})
}

func (h *Handler) abort(c *gin.Context, status int, key string, args ...any) {
	c.AbortWithStatusJSON(status, gin.H{"error": h.message(c, key, args...), "code": key})
}

// fieldRule turns a failed field rule into a localized 400 response.
func (h *Handler) fieldRule(c *gin.Context, field, tag string) {
	switch {
	case tag == "required":
		h.fail(c, http.StatusBadRequest, "error.required", h.message(c, "field."+field))
	case tag == "email":
		h.fail(c, http.StatusBadRequest, "error.email")
	case tag == "phone10":
		h.fail(c, http.StatusBadRequest, "error.phone10")
	case tag == "min" && field == "password":
		h.fail(c, http.StatusBadRequest, "error.min_password", config.MinPasswordLength)
	case field == "status":
		h.fail(c, http.StatusBadRequest, "error.invalid_status")
	default:
		h.fail(c, http.StatusBadRequest, "error.invalid_request")
	}
}

// bindError reports a request body or query that failed binding.
func (h *Handler) bindError(c *gin.Context, err error) {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		h.fieldRule(c, errs[0].Field(), errs[0].Tag())
		return
	}
	h.fail(c, http.StatusBadRequest, "error.invalid_request")
}

// respond maps a service error to a status code. notFoundKey names the
// message for storage.ErrNotFound on this route.
func (h *Handler) respond(c *gin.Context, err error, notFoundKey string) {
	var complaintErr *complaint.ValidationError
	var authErr *auth.ValidationError

	switch {
	case errors.As(err, &complaintErr):
		h.fieldRule(c, complaintErr.Field, "required")
	case errors.As(err, &authErr):
		h.fieldRule(c, authErr.Field, authErr.Tag)
	case errors.Is(err, complaint.ErrInvalidStatus), errors.Is(err, reservation.ErrInvalidStatus):
		h.fail(c, http.StatusBadRequest, "error.invalid_status")
	case errors.Is(err, reservation.ErrPropertyNotFound), errors.Is(err, catalog.ErrNotFound):
		h.fail(c, http.StatusNotFound, "error.property_not_found")
	case errors.Is(err, storage.ErrNotFound):
		h.fail(c, http.StatusNotFound, notFoundKey)
	case errors.Is(err, auth.ErrEmailTaken):
		h.fail(c, http.StatusConflict, "error.email_taken")
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.fail(c, http.StatusUnauthorized, "error.invalid_credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		h.fail(c, http.StatusUnauthorized, "error.unauthorized")
	default:
		_ = c.Error(err)
		h.fail(c, http.StatusInternalServerError, "error.internal")
	}
}
