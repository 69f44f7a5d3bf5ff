package merchant

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	// FindByID finds a company by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindByUserID finds the company owned by the given user
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Company, error)

	// FindAll finds all companies matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Company, error)

	// FindByApproval finds companies filtered by approval state.
	// A nil approved means all companies regardless of state.
	FindByApproval(ctx context.Context, approved *bool, filter shared.Filter) ([]Company, error)

	// Save creates or updates a company
	Save(ctx context.Context, company *Company) error

	// Count counts companies matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByApproval counts companies filtered by approval state
	CountByApproval(ctx context.Context, approved *bool) (int64, error)
}
