package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/fulfillment/internal/entity"
	"github.com/tournevent/fulfillment/internal/notify"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type fakeOrders struct {
	order *entity.Order
}

func (f *fakeOrders) GetOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	if f.order == nil || f.order.ID != orderID {
		return nil, entity.ErrOrderNotFound
	}
	return f.order, nil
}

type fakeStore struct {
	mu      sync.Mutex
	saved   []*entity.Notification
	saveErr error
}

func (f *fakeStore) SaveNotification(ctx context.Context, n *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, n)
	return nil
}

func (f *fakeStore) Saved() []*entity.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*entity.Notification(nil), f.saved...)
}

type fakeSender struct {
	mu      sync.Mutex
	sent    []notify.StatusEvent
	sendErr error
}

func (f *fakeSender) Send(ctx context.Context, event notify.StatusEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, event)
	return nil
}

func (f *fakeSender) Sent() []notify.StatusEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notify.StatusEvent(nil), f.sent...)
}

func newTestDispatcher(delay time.Duration) (*notify.Dispatcher, *fakeStore, *fakeSender) {
	orders := &fakeOrders{order: &entity.Order{ID: "ORD1", CustomerID: "CUST1"}}
	store := &fakeStore{}
	sender := &fakeSender{}
	logger := otelzap.New(zap.NewNop())
	return notify.NewDispatcher(orders, store, sender, delay, logger, nil), store, sender
}

func TestDispatcher_Notify_PersistsAndSends(t *testing.T) {
	d, store, sender := newTestDispatcher(10 * time.Millisecond)
	defer d.Close()

	d.Notify("ORD1", entity.OrderShipped)

	require.Eventually(t, func() bool {
		return len(sender.Sent()) == 1
	}, 2*time.Second, 5*time.Millisecond)

	saved := store.Saved()
	require.Len(t, saved, 1)
	assert.Equal(t, "CUST1", saved[0].CustomerID)
	assert.Equal(t, "ORD1", saved[0].OrderID)
	assert.Equal(t, entity.OrderShipped, saved[0].Status)
	assert.NotEmpty(t, saved[0].ID)

	event := sender.Sent()[0]
	assert.Equal(t, saved[0].ID, event.NotificationID)
	assert.Equal(t, "ORD1", event.OrderID)
	assert.Equal(t, "CUST1", event.CustomerID)
	assert.Equal(t, "shipped", event.Status)
}

func TestDispatcher_Notify_SendIsDelayed(t *testing.T) {
	d, store, sender := newTestDispatcher(200 * time.Millisecond)
	defer d.Close()

	d.Notify("ORD1", entity.OrderShipped)

	// The in-app record lands immediately, the outbound event only after
	// the configured delay.
	require.Eventually(t, func() bool {
		return len(store.Saved()) == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Empty(t, sender.Sent())

	require.Eventually(t, func() bool {
		return len(sender.Sent()) == 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestDispatcher_Notify_OrderLookupFailed(t *testing.T) {
	d, store, sender := newTestDispatcher(5 * time.Millisecond)

	d.Notify("UNKNOWN", entity.OrderShipped)
	d.Close()

	assert.Empty(t, store.Saved())
	assert.Empty(t, sender.Sent())
}

func TestDispatcher_Notify_SaveFailureStillSends(t *testing.T) {
	d, store, sender := newTestDispatcher(5 * time.Millisecond)
	defer d.Close()
	store.saveErr = errors.New("insert failed")

	d.Notify("ORD1", entity.OrderShipped)

	require.Eventually(t, func() bool {
		return len(sender.Sent()) == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Empty(t, store.Saved())
}

func TestDispatcher_Notify_SendFailureNotPropagated(t *testing.T) {
	d, _, sender := newTestDispatcher(5 * time.Millisecond)
	sender.sendErr = errors.New("broker unreachable")

	// Must not panic or block the caller
	d.Notify("ORD1", entity.OrderShipped)
	d.Close()
}

func TestDispatcher_Close_DropsPendingSend(t *testing.T) {
	d, store, sender := newTestDispatcher(10 * time.Second)

	d.Notify("ORD1", entity.OrderShipped)

	require.Eventually(t, func() bool {
		return len(store.Saved()) == 1
	}, 2*time.Second, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		d.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close should not wait out the send delay")
	}

	assert.Empty(t, sender.Sent())
}
