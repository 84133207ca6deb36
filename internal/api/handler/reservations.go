package handler

import (
	"net/http"

	"aura/backend/internal/models"

	"github.com/gin-gonic/gin"
)

const reservationNotFound = "error.reservation_not_found"

type reserveRequest struct {
	PropertyID string `json:"propertyId" binding:"required"`
}

// Reserve records a pending reservation for the caller.
func (h *Handler) Reserve(c *gin.Context) {
	var in reserveRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		h.bindError(c, err)
		return
	}

	record, err := h.Reservations.Reserve(c.Request.Context(), currentSession(c), in.PropertyID)
	if err != nil {
		h.respond(c, err, reservationNotFound)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) MyReservations(c *gin.Context) {
	list, err := h.Reservations.ListMine(c.Request.Context(), currentSession(c))
	if err != nil {
		h.respond(c, err, reservationNotFound)
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

func (h *Handler) ListReservations(c *gin.Context) {
	list, err := h.Reservations.List(c.Request.Context(), models.ReservationStatus(c.Query("status")))
	if err != nil {
		h.respond(c, err, reservationNotFound)
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

// SetReservationStatus approves, rejects or re-opens a reservation.
func (h *Handler) SetReservationStatus(c *gin.Context) {
	var in statusRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		h.bindError(c, err)
		return
	}

	record, err := h.Reservations.SetStatus(c.Request.Context(), c.Param("id"), models.ReservationStatus(in.Status))
	if err != nil {
		h.respond(c, err, reservationNotFound)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) ResetReservation(c *gin.Context) {
	record, err := h.Reservations.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respond(c, err, reservationNotFound)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) ReservationStats(c *gin.Context) {
	stats, err := h.Reservations.Stats(c.Request.Context())
	if err != nil {
		h.respond(c, err, reservationNotFound)
		return
	}
	c.JSON(http.StatusOK, stats)
}
