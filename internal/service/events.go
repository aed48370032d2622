package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/hotel-booking/internal/queue"
)

// EventPublisher delivers domain events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.Event) error
}

// NopPublisher discards events.  It is used when EVENTS_ENABLED is off.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, queue.Event) error { return nil }

const publishTimeout = 3 * time.Second

// publishEvent sends ev after the surrounding transaction committed.  A
// failure is logged and never reaches the caller.
func publishEvent(ctx context.Context, pub EventPublisher, log *zap.Logger, ev queue.Event) {
	if pub == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC()
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := pub.Publish(ctx, ev); err != nil {
		log.Warn("event publish failed",
			zap.String("type", ev.Type),
			zap.Uint64("booking_id", ev.BookingID),
			zap.Error(err))
	}
}
