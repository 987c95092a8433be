// Package kafka constructs kafka-go producers wired to the service logger.
package kafka

import (
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// NewWriter creates a kafka writer for the given topic. The writer is safe
// for concurrent use and must be closed on shutdown.
func NewWriter(brokers []string, topic string, logger *otelzap.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Logger: kafka.LoggerFunc(func(msg string, args ...any) {
			logger.Debug("kafka writer",
				zap.String("topic", topic),
				zap.String("message", fmt.Sprintf(msg, args...)),
			)
		}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			logger.Error("kafka writer error",
				zap.String("topic", topic),
				zap.String("error", fmt.Sprintf(msg, args...)),
			)
		}),
	}
}
