package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/marketplace/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

func TestNewBusinessMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})

	require.NoError(t, err)
	require.NotNil(t, bm)
}

func TestNewBusinessMetrics_NilMeter(t *testing.T) {
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:  nil,
		Logger: zap.NewNop(),
	})

	require.Error(t, err)
	assert.Nil(t, bm)
	assert.Equal(t, "NewBusinessMetrics: meter cannot be nil", err.Error())
}

func TestBusinessMetrics_RecordCartItemAdded(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	bm.RecordCartItemAdded(ctx, "veg", 2)
	bm.RecordCartItemAdded(ctx, "nonveg", 1)
}

func TestBusinessMetrics_RecordCartAmount(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	bm.RecordCartAmount(ctx, "veg", 10000) // 100.00
	bm.RecordCartAmount(ctx, "other", 50000)
}

func TestBusinessMetrics_RecordCartAddition(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()
	unitPrice := decimal.NewFromFloat(79.99)

	// Should not panic and record both count and amount
	bm.RecordCartAddition(ctx, "veg", 2, unitPrice)
}

func TestBusinessMetrics_RecordApprovalDecision(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	bm.RecordApprovalDecision(ctx, telemetry.ApprovalEntityProduct, telemetry.ApprovalOutcomeApproved)
	bm.RecordApprovalDecision(ctx, telemetry.ApprovalEntityCompany, telemetry.ApprovalOutcomeRevoked)
}

func TestBusinessMetrics_RecordPendingApprovals(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	bm.RecordPendingApprovals(ctx, telemetry.ApprovalEntityProduct, 100)
	bm.RecordPendingApprovals(ctx, telemetry.ApprovalEntityCompany, 5)
}

// Mock implementation for testing periodic collection

type mockApprovalProvider struct {
	pendingProducts  int64
	pendingCompanies int64
	err              error
}

func (m *mockApprovalProvider) GetPendingProductCount(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.pendingProducts, nil
}

func (m *mockApprovalProvider) GetPendingCompanyCount(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.pendingCompanies, nil
}

func TestBusinessMetrics_PeriodicCollection(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	approvalProvider := &mockApprovalProvider{
		pendingProducts:  12,
		pendingCompanies: 3,
	}

	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:            meter,
		Logger:           zap.NewNop(),
		ApprovalProvider: approvalProvider,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start periodic collection with short interval for testing
	bm.StartPeriodicCollection(ctx, 100*time.Millisecond)

	// Wait for at least one collection cycle
	time.Sleep(150 * time.Millisecond)

	// Stop collection
	bm.Stop()

	// Should complete without error
}

func TestBusinessMetrics_PeriodicCollection_NoProvider(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
		// No approval provider
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Should not panic with no approval provider
	bm.StartPeriodicCollection(ctx, 50*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	bm.Stop()
}

func TestBusinessMetrics_Stop_Idempotent(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	// Calling Stop multiple times should not panic
	bm.Stop()
	bm.Stop()
	bm.Stop()
}

func TestBusinessMetrics_StartPeriodicCollection_OnlyOnce(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Calling StartPeriodicCollection multiple times should only start once
	bm.StartPeriodicCollection(ctx, time.Hour)
	bm.StartPeriodicCollection(ctx, time.Minute)
	bm.StartPeriodicCollection(ctx, time.Second)

	bm.Stop()
}

func TestApprovalEntity_Values(t *testing.T) {
	assert.Equal(t, telemetry.ApprovalEntity("product"), telemetry.ApprovalEntityProduct)
	assert.Equal(t, telemetry.ApprovalEntity("company"), telemetry.ApprovalEntityCompany)
}

func TestApprovalOutcome_Values(t *testing.T) {
	assert.Equal(t, telemetry.ApprovalOutcome("approved"), telemetry.ApprovalOutcomeApproved)
	assert.Equal(t, telemetry.ApprovalOutcome("revoked"), telemetry.ApprovalOutcomeRevoked)
}

func TestMetricsError_Error(t *testing.T) {
	err := &telemetry.MetricsError{
		Op:  "TestOperation",
		Err: "test error message",
	}

	assert.Equal(t, "TestOperation: test error message", err.Error())
}
