package models

import "time"

// ComplaintStatus is the administrator-controlled state of a complaint.
type ComplaintStatus string

const (
	ComplaintUnderReview ComplaintStatus = "under_review"
	ComplaintResolved    ComplaintStatus = "resolved"
	ComplaintRejected    ComplaintStatus = "rejected"
)

// ComplaintStatuses lists the valid complaint statuses.
var ComplaintStatuses = []ComplaintStatus{ComplaintUnderReview, ComplaintResolved, ComplaintRejected}

// Valid reports whether s is one of the known complaint statuses.
func (s ComplaintStatus) Valid() bool {
	for _, known := range ComplaintStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Complaint is a maintenance complaint filed by a resident.
type Complaint struct {
	// ID is the immutable record identifier (UUID).
	ID string `gorm:"primaryKey" json:"id"`
	// Number is the human-facing reference shown to residents ("CMP-<millis>").
	Number string `gorm:"uniqueIndex" json:"complaintId"`
	// UserEmail identifies the submitting user.
	UserEmail    string `gorm:"index;not null" json:"userEmail"`
	Subject      string `gorm:"not null" json:"subject"`
	Description  string `gorm:"type:text;not null" json:"description"`
	PropertyID   string `json:"propertyId,omitempty"`
	PropertyName string `json:"propertyName,omitempty"`
	// Analysis is bound once at creation.
	Analysis  TriageResult    `gorm:"embedded;embeddedPrefix:analysis_" json:"analysis"`
	Status    ComplaintStatus `gorm:"type:text;index;not null" json:"status"`
	CreatedAt time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ComplaintPatch carries the administrator-editable fields of a complaint.
// Nil fields are left unchanged.
type ComplaintPatch struct {
	Subject      *string          `json:"subject"`
	Description  *string          `json:"description"`
	PropertyID   *string          `json:"propertyId"`
	PropertyName *string          `json:"propertyName"`
	Status       *ComplaintStatus `json:"status"`
}

// Apply copies the non-nil patch fields onto c.
func (p ComplaintPatch) Apply(c *Complaint) {
	if p.Subject != nil {
		c.Subject = *p.Subject
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.PropertyID != nil {
		c.PropertyID = *p.PropertyID
	}
	if p.PropertyName != nil {
		c.PropertyName = *p.PropertyName
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
}
