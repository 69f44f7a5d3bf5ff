// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the marketplace.
// It tracks cart activity and the state of the approval backlog.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	cartItemAddedTotal    *Counter
	cartAmountTotal       *Counter
	approvalDecisionTotal *Counter

	// Gauge metrics (point-in-time values)
	pendingApprovalCount *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	approvalProvider ApprovalMetricsProvider
}

// ApprovalMetricsProvider provides approval backlog data for periodic metrics
// collection. This interface allows the telemetry layer to query approval
// state without depending on the catalog or merchant domains directly.
type ApprovalMetricsProvider interface {
	// GetPendingProductCount returns the number of products awaiting approval
	GetPendingProductCount(ctx context.Context) (int64, error)

	// GetPendingCompanyCount returns the number of companies awaiting approval
	GetPendingCompanyCount(ctx context.Context) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter            metric.Meter
	Logger           *zap.Logger
	CollectInterval  time.Duration // Default: 5 minutes
	ApprovalProvider ApprovalMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:            cfg.Meter,
		logger:           logger,
		stopChan:         make(chan struct{}),
		approvalProvider: cfg.ApprovalProvider,
	}

	// Initialize counter metrics
	var err error

	// Cart metrics
	bm.cartItemAddedTotal, err = NewCounter(
		cfg.Meter,
		"marketplace_cart_item_added_total",
		"Total number of cart item additions",
		"{items}",
	)
	if err != nil {
		return nil, err
	}

	bm.cartAmountTotal, err = NewCounter(
		cfg.Meter,
		"marketplace_cart_amount_total",
		"Total amount added to carts in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	// Approval metrics
	bm.approvalDecisionTotal, err = NewCounter(
		cfg.Meter,
		"marketplace_approval_decision_total",
		"Total number of approval decisions made by admins",
		"{decisions}",
	)
	if err != nil {
		return nil, err
	}

	bm.pendingApprovalCount, err = NewGauge(
		cfg.Meter,
		"marketplace_pending_approval_count",
		"Number of entities awaiting admin approval",
		"{entities}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Cart Metrics
// =============================================================================

// RecordCartItemAdded records a cart item addition.
// This should be called from the application layer when an item is added.
func (bm *BusinessMetrics) RecordCartItemAdded(ctx context.Context, category string, quantity int64) {
	bm.cartItemAddedTotal.Add(ctx, quantity,
		AttrCategory.String(category),
	)
}

// RecordCartAmount records the amount added to a cart.
// Amount should be in the smallest currency unit (cents).
func (bm *BusinessMetrics) RecordCartAmount(ctx context.Context, category string, amountCents int64) {
	bm.cartAmountTotal.Add(ctx, amountCents,
		AttrCategory.String(category),
	)
}

// RecordCartAddition is a convenience method that records both item count
// and amount for a single cart addition.
func (bm *BusinessMetrics) RecordCartAddition(ctx context.Context, category string, quantity int, unitPrice decimal.Decimal) {
	bm.RecordCartItemAdded(ctx, category, int64(quantity))

	// Convert to cents (multiply by 100)
	amountCents := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Mul(decimal.NewFromInt(100)).IntPart()
	bm.RecordCartAmount(ctx, category, amountCents)
}

// =============================================================================
// Approval Metrics
// =============================================================================

// ApprovalEntity labels which aggregate an approval decision applies to.
type ApprovalEntity string

const (
	ApprovalEntityProduct ApprovalEntity = "product"
	ApprovalEntityCompany ApprovalEntity = "company"
)

// ApprovalOutcome labels the direction of an approval decision.
type ApprovalOutcome string

const (
	ApprovalOutcomeApproved ApprovalOutcome = "approved"
	ApprovalOutcomeRevoked  ApprovalOutcome = "revoked"
)

// RecordApprovalDecision records an admin approval decision.
func (bm *BusinessMetrics) RecordApprovalDecision(ctx context.Context, entity ApprovalEntity, outcome ApprovalOutcome) {
	bm.approvalDecisionTotal.Inc(ctx,
		AttrEntityType.String(string(entity)),
		AttrApprovalOutcome.String(string(outcome)),
	)
}

// RecordPendingApprovals records the current size of the approval backlog for
// an entity type. This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordPendingApprovals(ctx context.Context, entity ApprovalEntity, count int64) {
	bm.pendingApprovalCount.Record(ctx, count,
		AttrEntityType.String(string(entity)),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects approval backlog metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectApprovalMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectApprovalMetrics(ctx)
		}
	}
}

// collectApprovalMetrics collects the approval backlog gauges.
func (bm *BusinessMetrics) collectApprovalMetrics(ctx context.Context) {
	if bm.approvalProvider == nil {
		bm.logger.Debug("No approval provider configured, skipping approval metrics collection")
		return
	}

	productCount, err := bm.approvalProvider.GetPendingProductCount(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get pending product count", zap.Error(err))
	} else {
		bm.RecordPendingApprovals(ctx, ApprovalEntityProduct, productCount)
	}

	companyCount, err := bm.approvalProvider.GetPendingCompanyCount(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get pending company count", zap.Error(err))
	} else {
		bm.RecordPendingApprovals(ctx, ApprovalEntityCompany, companyCount)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// =============================================================================
// Attribute Key Constants
// =============================================================================

// Business metrics attribute keys not already defined in metrics.go
var (
	// Additional business attributes can be added here
	AttrCartSource = attribute.Key("cart_source")
)
