package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Consumer listens on QueueName and appends one line per event to
// <dir>/booking.log.
type Consumer struct {
	url string
	dir string
	log *zap.Logger
}

// NewConsumer returns a consumer writing its audit log into dir.
func NewConsumer(url, dir string, log *zap.Logger) *Consumer {
	return &Consumer{url: url, dir: dir, log: log}
}

// Run connects to RabbitMQ and consumes until ctx is cancelled.  It keeps
// reconnecting with exponential backoff (capped at 30s) when the broker is
// unreachable or the delivery channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("booking-consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("booking-consumer: consume loop ended, reconnecting", zap.Error(err))
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn("booking-consumer: set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(QueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.HandleMessage(d.Body); err != nil {
				c.log.Error("booking-consumer: handle message failed", zap.Error(err))
				_ = d.Nack(false, false) // do not requeue malformed input
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes body and appends its audit line.
func (c *Consumer) HandleMessage(body []byte) error {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" || ev.BookingID == 0 {
		return errors.New("event without type or booking_id")
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(c.dir, "booking.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders ev as a single human-readable log line.
func FormatLine(ev Event) string {
	ts := ev.OccurredAt.UTC().Format(time.RFC3339)
	switch ev.Type {
	case BookingCreated:
		return fmt.Sprintf("[%s] Booking created | booking_id=%d | user_id=%d | room_id=%d | status=%s\n",
			ts, ev.BookingID, ev.UserID, ev.RoomID, ev.PaymentStatus)
	case BookingCancelled:
		return fmt.Sprintf("[%s] Booking cancelled | booking_id=%d | room_id=%d\n",
			ts, ev.BookingID, ev.RoomID)
	case PaymentRecorded:
		return fmt.Sprintf("[%s] Payment recorded | booking_id=%d | amount=%.2f | status=%s\n",
			ts, ev.BookingID, ev.Amount, ev.PaymentStatus)
	}
	return fmt.Sprintf("[%s] %s | booking_id=%d\n", ts, ev.Type, ev.BookingID)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
