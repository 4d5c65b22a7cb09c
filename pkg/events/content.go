package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	ContentPublished = "CONTENT_PUBLISHED"
	ContentUpdated   = "CONTENT_UPDATED"
	ContentDeleted   = "CONTENT_DELETED"
)

// Event is what travels over the bus: a type code such as CONTENT_PUBLISHED
// plus a flat JSON-safe payload.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string               { return e.Type }
func (e BaseEvent) Payload() map[string]interface{} { return e.Data }
func (e BaseEvent) Timestamp() time.Time            { return e.OccurredAt }

// NewContentEvent builds the payload shared by every content lifecycle event.
func NewContentEvent(eventType string, contentId uuid.UUID, kind, slug string) BaseEvent {
	now := time.Now()
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"content_id":  contentId.String(),
			"kind":        kind,
			"slug":        slug,
			"entity_type": "content",
			"occurred_at": now.Format(time.RFC3339Nano),
		},
		OccurredAt: now,
	}
}

// ContentID reads the content id back out of a received event.
func ContentID(e Event) (uuid.UUID, error) {
	raw, ok := e.Payload()["content_id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("event %s has no content_id", e.EventType())
	}
	return uuid.Parse(raw)
}
