// Package fulfillment implements order fulfillment orchestration: splitting
// a paid order into one shipment per vendor, booking each with the carrier,
// reconciling per-vendor outcomes into order state, and the compensating
// per-vendor cancellation.
package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tournevent/fulfillment/internal/entity"
	"github.com/tournevent/fulfillment/internal/telemetry"
	"github.com/tournevent/fulfillment/pkg/carrier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultLegTimeout = 30 * time.Second

// Config holds orchestrator configuration.
type Config struct {
	// LegTimeout bounds each carrier call. A timed-out call fails its own
	// leg only.
	LegTimeout time.Duration

	// OriginCountry is the ISO country code stamped on shipment origins.
	OriginCountry string
}

// Orchestrator drives per-vendor shipment creation and cancellation for one
// configured carrier gateway. It is safe for concurrent use.
type Orchestrator struct {
	orders     OrderStore
	vendors    VendorStore
	products   ProductStore
	gateway    carrier.Carrier
	builder    *RequestBuilder
	notifier   Notifier
	logger     *otelzap.Logger
	metrics    *telemetry.Metrics
	legTimeout time.Duration
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(
	cfg Config,
	orders OrderStore,
	vendors VendorStore,
	products ProductStore,
	gateway carrier.Carrier,
	notifier Notifier,
	logger *otelzap.Logger,
	metrics *telemetry.Metrics,
) *Orchestrator {
	legTimeout := cfg.LegTimeout
	if legTimeout == 0 {
		legTimeout = defaultLegTimeout
	}

	return &Orchestrator{
		orders:     orders,
		vendors:    vendors,
		products:   products,
		gateway:    gateway,
		builder:    NewRequestBuilder(cfg.OriginCountry),
		notifier:   notifier,
		logger:     logger,
		metrics:    metrics,
		legTimeout: legTimeout,
	}
}

// Fulfill books one shipment per vendor group of the order and returns the
// per-vendor report. It returns an error only for order-level preconditions
// (entity.ErrOrderNotFound, entity.ErrNoLineItems); per-leg failures are
// recorded in the report and never abort sibling legs.
//
// Re-running Fulfill after a partial failure is safe: groups whose line
// items already carry a tracking identifier are skipped without a carrier
// call, and retried groups reuse their consignment number.
func (o *Orchestrator) Fulfill(ctx context.Context, orderID string) (*FulfillmentReport, error) {
	order, err := o.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("loading order %s: %w", orderID, err)
	}

	items, err := o.orders.ListLineItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("loading line items for order %s: %w", orderID, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("order %s: %w", orderID, entity.ErrNoLineItems)
	}

	products, err := o.products.GetProducts(ctx, productIDs(items))
	if err != nil {
		return nil, fmt.Errorf("loading products for order %s: %w", orderID, err)
	}

	groups := GroupByVendor(items, products)

	o.logger.Info("Fulfilling order",
		zap.String("order_id", orderID),
		zap.Int("line_items", len(items)),
		zap.Int("vendor_groups", len(groups)),
	)

	legs := make([]FulfillmentLeg, 0, len(groups))
	var mu sync.Mutex

	// Plain errgroup: legs are independent, and one vendor's failure must
	// never cancel another vendor's in-flight call.
	var g errgroup.Group
	for _, group := range groups {
		group := group
		g.Go(func() error {
			leg := o.fulfillLeg(ctx, order, group)
			mu.Lock()
			legs = append(legs, leg)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	sortFulfillmentLegs(legs)
	report := &FulfillmentReport{OrderID: orderID, Legs: legs}

	if report.AllFulfilled() {
		if err := o.orders.UpdateOrderStatus(ctx, orderID, entity.OrderShipped); err != nil {
			o.logger.Warn("Failed to update order status",
				zap.String("order_id", orderID),
				zap.Error(err),
			)
		} else if o.notifier != nil {
			o.notifier.Notify(orderID, entity.OrderShipped)
		}
	}

	return report, nil
}

// fulfillLeg runs one vendor's shipment-create call end to end.
func (o *Orchestrator) fulfillLeg(ctx context.Context, order *entity.Order, group *VendorGroup) FulfillmentLeg {
	leg := FulfillmentLeg{VendorID: group.VendorID, ItemIDs: group.ItemIDs()}

	if group.Fulfilled() {
		leg.Status = LegAlreadyFulfilled
		leg.TrackingNo = group.TrackingNo()
		o.metrics.RecordLeg("create", o.gateway.Name(), string(LegAlreadyFulfilled), 0)
		return leg
	}

	profile, err := o.vendors.GetProfile(ctx, group.VendorID)
	if err != nil {
		leg.Status = LegFailed
		leg.Error = fmt.Sprintf("resolving vendor %s: %v", group.VendorID, err)
		o.logger.Warn("Vendor leg failed before carrier call",
			zap.String("order_id", order.ID),
			zap.String("vendor_id", group.VendorID),
			zap.Error(err),
		)
		o.metrics.RecordLeg("create", o.gateway.Name(), string(LegFailed), 0)
		return leg
	}

	req := o.builder.Build(order, group, profile)

	legCtx, cancel := context.WithTimeout(ctx, o.legTimeout)
	defer cancel()

	start := time.Now()
	result, err := o.gateway.CreateShipment(legCtx, req)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		leg.Status = LegFailed
		leg.Error = err.Error()
		o.logger.Warn("Carrier shipment failed",
			zap.String("order_id", order.ID),
			zap.String("vendor_id", group.VendorID),
			zap.String("consignment_no", req.ConsignmentNo),
			zap.Error(err),
		)
		o.metrics.RecordLeg("create", o.gateway.Name(), string(LegFailed), elapsed)
		o.metrics.RecordCarrierError(o.gateway.Name(), errorType(err))
		return leg
	}

	if err := o.orders.SetVendorShipment(ctx, order.ID, group.VendorID, result.TrackingNo); err != nil {
		// The shipment exists at the carrier but we could not record it.
		// Surfacing the leg as failed makes the caller retry, and the retry
		// reconciles under the same consignment number.
		leg.Status = LegFailed
		leg.Error = fmt.Sprintf("recording shipment %s: %v", result.TrackingNo, err)
		o.logger.Error("Failed to record shipment",
			zap.String("order_id", order.ID),
			zap.String("vendor_id", group.VendorID),
			zap.String("tracking_no", result.TrackingNo),
			zap.Error(err),
		)
		o.metrics.RecordLeg("create", o.gateway.Name(), string(LegFailed), elapsed)
		return leg
	}

	leg.Status = LegSucceeded
	leg.TrackingNo = result.TrackingNo
	o.logger.Info("Vendor shipment booked",
		zap.String("order_id", order.ID),
		zap.String("vendor_id", group.VendorID),
		zap.String("tracking_no", result.TrackingNo),
	)
	o.metrics.RecordLeg("create", o.gateway.Name(), string(LegSucceeded), elapsed)
	return leg
}

func productIDs(items []entity.LineItem) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

func errorType(err error) string {
	var carrierErr *carrier.CarrierError
	if errors.As(err, &carrierErr) {
		return carrierErr.Code
	}
	return "transport"
}
