// Package notify delivers customer notifications for order status
// transitions. Delivery is best-effort and fire-and-forget: callers never
// wait for it and never see its failures.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tournevent/fulfillment/internal/entity"
	"github.com/tournevent/fulfillment/internal/telemetry"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	defaultDelay     = 5 * time.Second
	defaultOpTimeout = 10 * time.Second
)

// OrderLookup resolves the order whose status changed, to find its customer.
type OrderLookup interface {
	GetOrder(ctx context.Context, orderID string) (*entity.Order, error)
}

// Store persists in-app notification records.
type Store interface {
	SaveNotification(ctx context.Context, n *entity.Notification) error
}

// Sender delivers the delayed, email-style notification event.
type Sender interface {
	Send(ctx context.Context, event StatusEvent) error
}

// StatusEvent is the outbound notification payload.
type StatusEvent struct {
	NotificationID string    `json:"notification_id"`
	OrderID        string    `json:"order_id"`
	CustomerID     string    `json:"customer_id"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Dispatcher persists an in-app notification record immediately and sends
// the outbound event after a fixed delay. The delay keeps the event from
// racing downstream systems that may still be finalizing the same status
// transition. Failures are logged, never retried indefinitely, and never
// surfaced to the caller.
type Dispatcher struct {
	orders  OrderLookup
	store   Store
	sender  Sender
	logger  *otelzap.Logger
	metrics *telemetry.Metrics
	delay   time.Duration

	wg        sync.WaitGroup
	done      chan struct{}
	closeOnce sync.Once
}

// NewDispatcher creates a dispatcher with the given send delay
// (defaultDelay when zero).
func NewDispatcher(orders OrderLookup, store Store, sender Sender, delay time.Duration, logger *otelzap.Logger, metrics *telemetry.Metrics) *Dispatcher {
	if delay <= 0 {
		delay = defaultDelay
	}
	return &Dispatcher{
		orders:  orders,
		store:   store,
		sender:  sender,
		logger:  logger,
		metrics: metrics,
		delay:   delay,
		done:    make(chan struct{}),
	}
}

// Notify schedules a notification for the order's customer and returns
// immediately.
func (d *Dispatcher) Notify(orderID string, status entity.OrderStatus) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.dispatch(orderID, status)
	}()
}

// Close stops pending delayed sends and waits for in-flight dispatches.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.done)
	})
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(orderID string, status entity.OrderStatus) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultOpTimeout)
	defer cancel()

	order, err := d.orders.GetOrder(ctx, orderID)
	if err != nil {
		d.logger.Error("Notification skipped: order lookup failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		d.metrics.RecordNotification("lookup_failed")
		return
	}

	record := &entity.Notification{
		ID:         uuid.New().String(),
		CustomerID: order.CustomerID,
		OrderID:    orderID,
		Status:     status,
		CreatedAt:  time.Now(),
	}
	if err := d.store.SaveNotification(ctx, record); err != nil {
		// The delayed event is still worth sending.
		d.logger.Error("Failed to persist notification record",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}

	select {
	case <-time.After(d.delay):
	case <-d.done:
		return
	}

	sendCtx, sendCancel := context.WithTimeout(context.Background(), defaultOpTimeout)
	defer sendCancel()

	event := StatusEvent{
		NotificationID: record.ID,
		OrderID:        orderID,
		CustomerID:     order.CustomerID,
		Status:         string(status),
		OccurredAt:     record.CreatedAt,
	}
	if err := d.sender.Send(sendCtx, event); err != nil {
		d.logger.Error("Failed to send status notification",
			zap.String("order_id", orderID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		d.metrics.RecordNotification("send_failed")
		return
	}

	d.logger.Info("Status notification sent",
		zap.String("order_id", orderID),
		zap.String("customer_id", order.CustomerID),
		zap.String("status", string(status)),
	)
	d.metrics.RecordNotification("sent")
}
