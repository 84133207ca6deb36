// Package feed pushes admin events to connected dashboards.
package feed

import "aura/backend/internal/models"

// Client is one connected dashboard.
type Client interface {
	// GetClientID returns a unique identifier for the connection.
	GetClientID() string
	// GetSendChannel is where the hub delivers events for this client.
	GetSendChannel() chan<- models.Event
	// Run starts the client's pumps.
	Run()
	// Close stops delivery. The hub calls it exactly once per client.
	Close()
}
