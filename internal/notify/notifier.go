// Package notify publishes fire-and-forget order notifications to the
// platform notification pipeline over Kafka. Delivery to devices is
// someone else's job; this side only dispatches.
package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"kleanly/internal/domain"
)

// Notifier writes notification events to a topic. A Notifier built
// with no brokers is disabled and drops everything silently.
type Notifier struct {
	writer *kafka.Writer
	logger *log.Logger
}

func New(brokers []string, topic string, logger *log.Logger) *Notifier {
	n := &Notifier{logger: logger}
	if len(brokers) == 0 {
		return n
	}
	n.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return n
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.writer != nil
}

// Send publishes the notification keyed by order id. Fire-and-forget:
// failures are logged, never propagated to the checkout path.
func (n *Notifier) Send(ctx context.Context, note domain.Notification) {
	if !n.Enabled() {
		return
	}

	data, err := json.Marshal(note)
	if err != nil {
		n.logger.Printf("notify: marshal: %v", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(note.OrderID),
		Value: data,
		Time:  time.Now().UTC(),
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		n.logger.Printf("notify: publish order %s: %v", note.OrderID, err)
	}
}

// Close flushes and closes the underlying writer.
func (n *Notifier) Close() error {
	if !n.Enabled() {
		return nil
	}
	return n.writer.Close()
}
