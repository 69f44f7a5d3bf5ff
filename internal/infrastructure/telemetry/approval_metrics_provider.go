// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormApprovalMetricsProvider implements ApprovalMetricsProvider using GORM.
// It queries the products and companies tables directly for backlog counts.
type GormApprovalMetricsProvider struct {
	db *gorm.DB
}

// NewGormApprovalMetricsProvider creates a new GormApprovalMetricsProvider.
func NewGormApprovalMetricsProvider(db *gorm.DB) *GormApprovalMetricsProvider {
	return &GormApprovalMetricsProvider{db: db}
}

// GetPendingProductCount returns the number of products awaiting approval.
func (p *GormApprovalMetricsProvider) GetPendingProductCount(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("products").
		Where("is_approved = ?", false).
		Count(&count).Error

	return count, err
}

// GetPendingCompanyCount returns the number of companies awaiting approval.
func (p *GormApprovalMetricsProvider) GetPendingCompanyCount(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("companies").
		Where("is_approved = ?", false).
		Count(&count).Error

	return count, err
}
