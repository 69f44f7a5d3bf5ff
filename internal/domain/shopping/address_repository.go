package shopping

import (
	"context"

	"github.com/google/uuid"
)

// AddressRepository defines the interface for delivery address persistence
type AddressRepository interface {
	// FindByID finds an address by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryAddress, error)

	// FindByIDForUser finds an address by ID owned by the given user
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*DeliveryAddress, error)

	// FindAllForUser finds all addresses owned by the given user
	FindAllForUser(ctx context.Context, userID uuid.UUID) ([]DeliveryAddress, error)

	// FindDefaultForUser finds the user's default address, or ErrNotFound
	FindDefaultForUser(ctx context.Context, userID uuid.UUID) (*DeliveryAddress, error)

	// ClearDefault clears the default flag on all of the user's addresses
	ClearDefault(ctx context.Context, userID uuid.UUID) error

	// Save creates or updates an address
	Save(ctx context.Context, address *DeliveryAddress) error

	// Delete deletes an address
	Delete(ctx context.Context, id uuid.UUID) error
}
