package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/merchant"
	"github.com/marketplace/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormCompanyRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds a company by its ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*merchant.Company, error) {
	var company merchant.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindByUserID finds the company owned by the given user
func (r *GormCompanyRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*merchant.Company, error) {
	var company merchant.Company
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindAll finds all companies matching the filter
func (r *GormCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]merchant.Company, error) {
	var companies []merchant.Company
	query := r.applyFilter(r.db.WithContext(ctx).Model(&merchant.Company{}), filter)

	if err := query.Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// FindByApproval finds companies filtered by approval state.
// A nil approved means all companies regardless of state.
func (r *GormCompanyRepository) FindByApproval(ctx context.Context, approved *bool, filter shared.Filter) ([]merchant.Company, error) {
	query := r.db.WithContext(ctx).Model(&merchant.Company{})
	if approved != nil {
		query = query.Where("is_approved = ?", *approved)
	}
	query = r.applyFilter(query, filter)

	var companies []merchant.Company
	if err := query.Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *merchant.Company) error {
	events := company.GetDomainEvents()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(company).Error; err != nil {
			return err
		}

		// Save events to outbox within the same transaction
		if r.outboxSaver != nil && len(events) > 0 {
			if err := r.outboxSaver.SaveEvents(ctx, tx, events...); err != nil {
				return fmt.Errorf("failed to save events to outbox: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	company.ClearDomainEvents()
	return nil
}

// Count counts companies matching the filter
func (r *GormCompanyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&merchant.Company{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByApproval counts companies filtered by approval state
func (r *GormCompanyRepository) CountByApproval(ctx context.Context, approved *bool) (int64, error) {
	query := r.db.WithContext(ctx).Model(&merchant.Company{})
	if approved != nil {
		query = query.Where("is_approved = ?", *approved)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormCompanyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	orderBy := ValidateSortField(filter.OrderBy, CompanySortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCompanyRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR city ILIKE ?", searchPattern, searchPattern)
	}
	return query
}

// Ensure GormCompanyRepository implements CompanyRepository
var _ merchant.CompanyRepository = (*GormCompanyRepository)(nil)
