package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDForUser finds a product by ID owned by the given user
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindApproved finds approved (shopper-visible) products
	FindApproved(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByApproval finds products filtered by approval state.
	// A nil approved means all products regardless of state.
	FindByApproval(ctx context.Context, approved *bool, filter shared.Filter) ([]Product, error)

	// FindByCompany finds all products belonging to a company
	FindByCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product (hard delete)
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByApproval counts products filtered by approval state
	CountByApproval(ctx context.Context, approved *bool) (int64, error)

	// CountByCompany counts products belonging to a company
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
}
