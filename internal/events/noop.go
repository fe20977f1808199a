package events

import (
	"context"
	"log/slog"

	"github.com/quillbooks/bookkeeping_app/internal/middleware"
)

// NoopPublisher logs events instead of sending them anywhere. Used when no
// broker is configured, and in tests.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event string, identifier string) {
	middleware.GetLoggerFromCtx(ctx).Debug("Event dropped, no broker configured",
		slog.String("event", event),
		slog.String("identifier", identifier),
	)
}
