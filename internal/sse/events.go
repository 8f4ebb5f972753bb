// Package sse implements Server-Sent Events so dashboard components can
// re-read published store state after any mutation without polling.
package sse

import "time"

// EventType represents the type of SSE event.
type EventType string

const (
	// EventBookCreated represents a book creation event.
	EventBookCreated EventType = "book.created"
	// EventBookUpdated represents a book update event.
	EventBookUpdated EventType = "book.updated"
	// EventBookDeleted represents a book deletion event.
	EventBookDeleted EventType = "book.deleted"

	// EventCollectionCreated represents a collection creation event.
	EventCollectionCreated EventType = "collection.created"
	// EventCollectionUpdated represents a collection update event.
	EventCollectionUpdated EventType = "collection.updated"
	// EventCollectionDeleted represents a collection deletion event.
	EventCollectionDeleted EventType = "collection.deleted"

	// EventInvestigationCreated represents an investigation creation event.
	EventInvestigationCreated EventType = "investigation.created"
	// EventInvestigationUpdated represents an investigation update event.
	EventInvestigationUpdated EventType = "investigation.updated"
	// EventInvestigationDeleted represents an investigation deletion event.
	EventInvestigationDeleted EventType = "investigation.deleted"

	// EventStoreLoaded fires when a store finishes its initial source
	// resolution; the payload carries which tier won.
	EventStoreLoaded EventType = "store.loaded"
	// EventStoreDegraded fires when a store adopted a fallback tier. The
	// dashboard shows its "using local data" advisory off this event.
	EventStoreDegraded EventType = "store.degraded"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
	Type      EventType `json:"type"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(eventType EventType, data any) Event {
	return Event{
		Timestamp: time.Now(),
		Type:      eventType,
		Data:      data,
	}
}

// NewHeartbeatEvent creates a keepalive event.
func NewHeartbeatEvent() Event {
	return NewEvent(EventHeartbeat, nil)
}

// StoreStateData is the payload for store.loaded and store.degraded events.
type StoreStateData struct {
	Entity string `json:"entity"`
	Source string `json:"source"`
}
