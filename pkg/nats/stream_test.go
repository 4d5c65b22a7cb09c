package nats

import (
	"testing"
	"time"

	"portfolio-content-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubjectFor(t *testing.T) {
	assert.Equal(t, "content.content_published", SubjectFor(events.ContentPublished))
	assert.Equal(t, "content.content_deleted", SubjectFor(events.ContentDeleted))
}

func TestEventFromMessage(t *testing.T) {
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	evt := eventFromMessage("content.content_updated", map[string]interface{}{
		"content_id":  "abc",
		"occurred_at": at.Format(time.RFC3339Nano),
	})

	assert.Equal(t, events.ContentUpdated, evt.EventType())
	assert.True(t, at.Equal(evt.Timestamp()))
	assert.Equal(t, "abc", evt.Payload()["content_id"])
}

func TestEventFromMessageWithoutTimestamp(t *testing.T) {
	evt := eventFromMessage("content.content_deleted", map[string]interface{}{})
	assert.Equal(t, events.ContentDeleted, evt.EventType())
	assert.WithinDuration(t, time.Now(), evt.Timestamp(), time.Second)
}
