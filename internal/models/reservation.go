package models

import "time"

// ReservationStatus is the administrator decision on a reservation request.
type ReservationStatus string

const (
	ReservationPending  ReservationStatus = "pending"
	ReservationApproved ReservationStatus = "approved"
	ReservationRejected ReservationStatus = "rejected"
)

// ReservationStatuses lists the valid reservation statuses.
var ReservationStatuses = []ReservationStatus{ReservationPending, ReservationApproved, ReservationRejected}

// Valid reports whether s is one of the known reservation statuses.
func (s ReservationStatus) Valid() bool {
	for _, known := range ReservationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Reservation is a request by a user to rent a property.
// Any status may be set from any other, including back to pending.
type Reservation struct {
	ID             string            `gorm:"primaryKey" json:"id"`
	PropertyID     string            `gorm:"index;not null" json:"propertyId"`
	PropertyName   string            `json:"propertyName"`
	Location       string            `json:"location"`
	Bedrooms       int               `json:"bedrooms"`
	Price          int               `json:"price"`
	RequesterEmail string            `gorm:"index;not null" json:"userEmail"`
	RequesterName  string            `json:"userName"`
	RequesterPhone string            `json:"userPhone"`
	Status         ReservationStatus `gorm:"type:text;index;not null" json:"status"`
	CreatedAt      time.Time         `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}
