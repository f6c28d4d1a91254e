package entity

import "time"

const (
	EventProductCreated = "product_created"
	EventProductUpdated = "product_updated"
	EventProductDeleted = "product_deleted"
	EventExpiringSoon   = "expiring_soon"
)

// Event is pushed to a user's realtime connections.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
	Time time.Time   `json:"time"`
}

func NewEvent(eventType string, data interface{}) Event {
	return Event{
		Type: eventType,
		Data: data,
		Time: time.Now().UTC(),
	}
}
