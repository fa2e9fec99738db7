package events

import (
	"time"

	"github.com/google/uuid"
)

// StreamName is the Redis stream keyword lifecycle events are appended to.
const StreamName = "keyword-monitor:events"

// EventType identifies what happened to an entity.
type EventType string

const (
	KeywordCreated  EventType = "keyword.created"
	KeywordUpdated  EventType = "keyword.updated"
	KeywordDeleted  EventType = "keyword.deleted"
	CategoryCreated EventType = "category.created"
	CategoryUpdated EventType = "category.updated"
	CategoryDeleted EventType = "category.deleted"
)

// Event is one keyword or category lifecycle event.
type Event struct {
	EventID      uuid.UUID `json:"event_id"`
	EventType    EventType `json:"event_type"`
	EntityID     string    `json:"entity_id"`
	EntityName   string    `json:"entity_name,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
