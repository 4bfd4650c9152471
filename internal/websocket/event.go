package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to an entity
type EventType string

const (
	EventTypeUpdated  EventType = "updated"
	EventTypeComputed EventType = "computed"
	EventTypeAppended EventType = "appended"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeProfile EntityType = "profile"
	EntityTypeHealth  EntityType = "health"
	EntityTypeLedger  EntityType = "ledger"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"` // Combined type e.g. "health.computed"
	Entity    EntityType  `json:"entity"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ProfileUpdated creates a profile.updated event
func ProfileUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeProfile, payload)
}

// HealthComputed creates a health.computed event
func HealthComputed(payload interface{}) Event {
	return NewEvent(EventTypeComputed, EntityTypeHealth, payload)
}

// LedgerAppended creates a ledger.appended event
func LedgerAppended(payload interface{}) Event {
	return NewEvent(EventTypeAppended, EntityTypeLedger, payload)
}
