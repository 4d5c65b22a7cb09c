package nats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"portfolio-content-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	StreamName    = "CONTENT"
	subjectPrefix = "content."
	streamMaxAge  = 24 * time.Hour
)

// SubjectFor maps an event type such as CONTENT_PUBLISHED to content.content_published.
func SubjectFor(eventType string) string {
	return subjectPrefix + strings.ToLower(eventType)
}

// eventFromMessage rebuilds the event wrapper from a subject and decoded payload.
func eventFromMessage(subject string, payload map[string]interface{}) events.BaseEvent {
	occurredAt := time.Now()
	if raw, ok := payload["occurred_at"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			occurredAt = t
		}
	}
	return events.BaseEvent{
		Type:       strings.ToUpper(strings.TrimPrefix(subject, subjectPrefix)),
		Data:       payload,
		OccurredAt: occurredAt,
	}
}

func connect(url string) (*nats.Conn, jetstream.JetStream, error) {
	nc, err := nats.Connect(url,
		nats.Name("portfolio-content"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}
	return nc, js, nil
}

// ensureStream creates or updates the content stream. Every instance reads
// every event, so messages are kept by age rather than as a work queue.
func ensureStream(ctx context.Context, js jetstream.JetStream) error {
	_, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{subjectPrefix + ">"},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
		MaxAge:    streamMaxAge,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure stream %s: %w", StreamName, err)
	}
	return nil
}
