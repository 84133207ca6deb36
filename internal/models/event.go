package models

import "time"

// EventKind names an admin-visible change.
type EventKind string

const (
	EventComplaintCreated         EventKind = "complaint.created"
	EventComplaintUpdated         EventKind = "complaint.updated"
	EventComplaintDeleted         EventKind = "complaint.deleted"
	EventReservationCreated       EventKind = "reservation.created"
	EventReservationStatusChanged EventKind = "reservation.status_changed"
)

// Event is broadcast to connected admin dashboards.
type Event struct {
	Kind     EventKind `json:"kind"`
	RecordID string    `json:"recordId"`
	Status   string    `json:"status,omitempty"`
	At       time.Time `json:"at"`
}
