package fulfillment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tournevent/fulfillment/internal/entity"
	"github.com/tournevent/fulfillment/pkg/carrier"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Cancel is the compensating transaction for Fulfill: it cancels each
// vendor's shipment independently and reports the aggregate outcome.
// Because fulfillment is per-vendor and partial, cancellation is too:
// there is no global rollback.
//
// Vendor groups that never shipped are reported as not applicable, not as
// failures: cancelling something never shipped is a no-op. Failed cancel
// legs leave their line items untouched so a retry can pick them up.
func (o *Orchestrator) Cancel(ctx context.Context, orderID string) (*CancellationReport, error) {
	order, err := o.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("loading order %s: %w", orderID, err)
	}

	items, err := o.orders.ListLineItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("loading line items for order %s: %w", orderID, err)
	}

	// Grouping needs no product metadata here; only tracking identifiers
	// matter for cancellation.
	groups := GroupByVendor(items, nil)

	o.logger.Info("Cancelling order",
		zap.String("order_id", orderID),
		zap.Int("vendor_groups", len(groups)),
	)

	legs := make([]CancellationLeg, 0, len(groups))
	var mu sync.Mutex

	var g errgroup.Group
	for _, group := range groups {
		group := group
		g.Go(func() error {
			leg := o.cancelLeg(ctx, order, group)
			mu.Lock()
			legs = append(legs, leg)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	sortCancellationLegs(legs)
	report := &CancellationReport{OrderID: orderID, Legs: legs}

	if report.Failed() == 0 {
		if err := o.orders.UpdateOrderStatus(ctx, orderID, entity.OrderCancelled); err != nil {
			o.logger.Warn("Failed to update order status",
				zap.String("order_id", orderID),
				zap.Error(err),
			)
		} else if o.notifier != nil {
			o.notifier.Notify(orderID, entity.OrderCancelled)
		}
	}

	return report, nil
}

// cancelLeg runs one vendor's shipment-cancel call end to end.
func (o *Orchestrator) cancelLeg(ctx context.Context, order *entity.Order, group *VendorGroup) CancellationLeg {
	leg := CancellationLeg{VendorID: group.VendorID, ItemIDs: group.ItemIDs()}

	trackingNo := group.TrackingNo()
	if trackingNo == "" {
		leg.Status = LegNotApplicable
		o.metrics.RecordLeg("cancel", o.gateway.Name(), string(LegNotApplicable), 0)
		return leg
	}
	leg.TrackingNo = trackingNo

	legCtx, cancel := context.WithTimeout(ctx, o.legTimeout)
	defer cancel()

	start := time.Now()
	result, err := o.gateway.CancelShipment(legCtx, &carrier.CancelRequest{
		TrackingNo: trackingNo,
		Reason:     "order cancelled",
	})
	elapsed := time.Since(start).Seconds()

	if err == nil && !result.Cancelled {
		err = fmt.Errorf("carrier declined cancellation: %s", result.Message)
	}
	if err != nil {
		leg.Status = LegFailed
		leg.Error = err.Error()
		o.logger.Warn("Carrier cancellation failed",
			zap.String("order_id", order.ID),
			zap.String("vendor_id", group.VendorID),
			zap.String("tracking_no", trackingNo),
			zap.Error(err),
		)
		o.metrics.RecordLeg("cancel", o.gateway.Name(), string(LegFailed), elapsed)
		o.metrics.RecordCarrierError(o.gateway.Name(), errorType(err))
		return leg
	}

	if err := o.orders.MarkShipmentCancelled(ctx, order.ID, trackingNo); err != nil {
		leg.Status = LegFailed
		leg.Error = fmt.Sprintf("recording cancellation %s: %v", trackingNo, err)
		o.logger.Error("Failed to record cancellation",
			zap.String("order_id", order.ID),
			zap.String("vendor_id", group.VendorID),
			zap.String("tracking_no", trackingNo),
			zap.Error(err),
		)
		o.metrics.RecordLeg("cancel", o.gateway.Name(), string(LegFailed), elapsed)
		return leg
	}

	leg.Status = LegSucceeded
	o.logger.Info("Vendor shipment cancelled",
		zap.String("order_id", order.ID),
		zap.String("vendor_id", group.VendorID),
		zap.String("tracking_no", trackingNo),
	)
	o.metrics.RecordLeg("cancel", o.gateway.Name(), string(LegSucceeded), elapsed)
	return leg
}
