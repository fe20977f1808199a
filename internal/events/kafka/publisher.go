package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/quillbooks/bookkeeping_app/internal/middleware"
	"github.com/segmentio/kafka-go"
)

// notificationTopic carries every engine event; consumers filter on the event
// name in the payload.
const notificationTopic = "bookkeeping_notifications"

type eventPayload struct {
	Event      string    `json:"event"`
	Identifier string    `json:"identifier"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher sends engine events to Kafka. Publishing is fire-and-forget:
// a broker outage is logged but never surfaced, so it cannot roll back the
// state change the event describes.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    notificationTopic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, event string, identifier string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	data, err := json.Marshal(eventPayload{
		Event:      event,
		Identifier: identifier,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Error("Failed to encode event", slog.String("event", event), slog.String("error", err.Error()))
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(identifier),
		Value: data,
	})
	if err != nil {
		logger.Error("Failed to publish event",
			slog.String("event", event),
			slog.String("identifier", identifier),
			slog.String("error", err.Error()),
		)
		return
	}
	logger.Debug("Event published", slog.String("event", event), slog.String("identifier", identifier))
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
