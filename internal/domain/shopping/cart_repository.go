package shopping

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence. The cart is
// always loaded and saved as a whole aggregate (items included) so that
// totals and items can never be observed out of sync.
type CartRepository interface {
	// FindByID finds a cart by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)

	// FindByUserID finds the cart owned by the given user
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save persists the whole cart aggregate, replacing its item list,
	// in a single transaction
	Save(ctx context.Context, cart *Cart) error
}
