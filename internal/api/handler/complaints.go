package handler

import (
	"net/http"

	"aura/backend/internal/complaint"
	"aura/backend/internal/models"

	"github.com/gin-gonic/gin"
)

const complaintNotFound = "error.complaint_not_found"

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SubmitComplaint files a complaint for the caller and returns it with its triage.
func (h *Handler) SubmitComplaint(c *gin.Context) {
	var in complaint.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.bindError(c, err)
		return
	}

	record, err := h.Complaints.Submit(c.Request.Context(), currentSession(c), in)
	if err != nil {
		h.respond(c, err, complaintNotFound)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) MyComplaints(c *gin.Context) {
	list, err := h.Complaints.ListMine(c.Request.Context(), currentSession(c))
	if err != nil {
		h.respond(c, err, complaintNotFound)
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

// ListComplaints serves the admin table, optionally filtered by ?status=.
func (h *Handler) ListComplaints(c *gin.Context) {
	list, err := h.Complaints.List(c.Request.Context(), models.ComplaintStatus(c.Query("status")))
	if err != nil {
		h.respond(c, err, complaintNotFound)
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

func (h *Handler) GetComplaint(c *gin.Context) {
	record, err := h.Complaints.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respond(c, err, complaintNotFound)
		return
	}
	c.JSON(http.StatusOK, record)
}

// UpdateComplaint applies an admin edit. The stored analysis is never recomputed.
func (h *Handler) UpdateComplaint(c *gin.Context) {
	var patch models.ComplaintPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.bindError(c, err)
		return
	}
	// The name always follows the property id.
	patch.PropertyName = nil

	record, err := h.Complaints.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respond(c, err, complaintNotFound)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) SetComplaintStatus(c *gin.Context) {
	var in statusRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		h.bindError(c, err)
		return
	}

	record, err := h.Complaints.SetStatus(c.Request.Context(), c.Param("id"), models.ComplaintStatus(in.Status))
	if err != nil {
		h.respond(c, err, complaintNotFound)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) DeleteComplaint(c *gin.Context) {
	if err := h.Complaints.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respond(c, err, complaintNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ComplaintStats(c *gin.Context) {
	stats, err := h.Complaints.Stats(c.Request.Context())
	if err != nil {
		h.respond(c, err, complaintNotFound)
		return
	}
	c.JSON(http.StatusOK, stats)
}
