package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// KafkaSender publishes status events to the notification topic. Messages
// are keyed by order id so all events for one order land on one partition
// in order.
type KafkaSender struct {
	writer *kafka.Writer
}

// NewKafkaSender creates a sender over an existing writer. The writer is
// owned by the caller and closed on shutdown.
func NewKafkaSender(writer *kafka.Writer) *KafkaSender {
	return &KafkaSender{writer: writer}
}

// Send publishes one status event.
func (s *KafkaSender) Send(ctx context.Context, event StatusEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling status event: %w", err)
	}

	err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("writing status event: %w", err)
	}
	return nil
}

var _ Sender = (*KafkaSender)(nil)
