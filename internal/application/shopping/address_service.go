package shopping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shopping"
)

// AddressService manages a user's delivery addresses and enforces the
// at-most-one-default invariant. Every mutation runs under the user's lock
// so the clear-siblings-then-set sequence is never interleaved with another
// request for the same user.
type AddressService struct {
	addressRepo    shopping.AddressRepository
	locker         shared.UserLocker
	eventPublisher shared.EventPublisher
}

// NewAddressService creates a new AddressService
func NewAddressService(addressRepo shopping.AddressRepository, locker shared.UserLocker) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		locker:      locker,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *AddressService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// List returns all addresses owned by the user
func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]AddressResponse, 0, len(addresses))
	for idx := range addresses {
		responses = append(responses, ToAddressResponse(&addresses[idx]))
	}
	return responses, nil
}

// Get returns one address owned by the user. A foreign address id reads as
// not found, never as someone else's data.
func (s *AddressService) Get(ctx context.Context, userID, addressID uuid.UUID) (*AddressResponse, error) {
	address, err := s.findOwned(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}
	response := ToAddressResponse(address)
	return &response, nil
}

// Create creates a new address. When the request marks it default, all
// sibling addresses are cleared first. A first address is not auto-promoted;
// only an explicit default request triggers the clear-then-set sequence.
func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, req CreateAddressRequest) (*AddressResponse, error) {
	release, err := s.locker.Acquire(ctx, userLockKey(userID))
	if err != nil {
		return nil, err
	}
	defer release()

	address, err := shopping.NewDeliveryAddress(userID, addressFieldsFromCreate(req))
	if err != nil {
		return nil, err
	}

	if req.IsDefault {
		if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
		address.SetDefault(true)
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, address)

	response := ToAddressResponse(address)
	return &response, nil
}

// Update updates an owned address. Promoting it to default clears the
// siblings first; an explicit is_default=false simply clears the flag.
func (s *AddressService) Update(ctx context.Context, userID, addressID uuid.UUID, req UpdateAddressRequest) (*AddressResponse, error) {
	release, err := s.locker.Acquire(ctx, userLockKey(userID))
	if err != nil {
		return nil, err
	}
	defer release()

	address, err := s.findOwned(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	if err := address.Update(addressFieldsFromUpdate(req, address.AddressType)); err != nil {
		return nil, err
	}

	if req.IsDefault != nil {
		if *req.IsDefault && !address.IsDefault {
			if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
				return nil, err
			}
			address.SetDefault(true)
		} else if !*req.IsDefault {
			address.SetDefault(false)
		}
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, address)

	response := ToAddressResponse(address)
	return &response, nil
}

// Delete deletes an owned address. Deleting the current default promotes
// one of the remaining addresses, when any exist.
func (s *AddressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	release, err := s.locker.Acquire(ctx, userLockKey(userID))
	if err != nil {
		return err
	}
	defer release()

	address, err := s.findOwned(ctx, userID, addressID)
	if err != nil {
		return err
	}
	wasDefault := address.IsDefault

	if err := s.addressRepo.Delete(ctx, address.ID); err != nil {
		return err
	}

	if wasDefault {
		remaining, err := s.addressRepo.FindAllForUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			promoted := &remaining[0]
			promoted.SetDefault(true)
			if err := s.addressRepo.Save(ctx, promoted); err != nil {
				return err
			}
			s.publishEvents(ctx, promoted)
		}
	}

	return nil
}

// SetDefault makes the given owned address the user's default. Idempotent:
// re-setting the current default changes nothing.
func (s *AddressService) SetDefault(ctx context.Context, userID, addressID uuid.UUID) (*AddressResponse, error) {
	release, err := s.locker.Acquire(ctx, userLockKey(userID))
	if err != nil {
		return nil, err
	}
	defer release()

	address, err := s.findOwned(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	if !address.IsDefault {
		if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
		address.SetDefault(true)
		if err := s.addressRepo.Save(ctx, address); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, address)
	}

	response := ToAddressResponse(address)
	return &response, nil
}

// findOwned loads an address and checks ownership, translating both a
// missing record and a cross-user id into not found
func (s *AddressService) findOwned(ctx context.Context, userID, addressID uuid.UUID) (*shopping.DeliveryAddress, error) {
	address, err := s.addressRepo.FindByIDForUser(ctx, userID, addressID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Address not found")
		}
		return nil, err
	}
	return address, nil
}

// publishEvents publishes and clears the address's pending domain events
func (s *AddressService) publishEvents(ctx context.Context, address *shopping.DeliveryAddress) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range address.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	address.ClearDomainEvents()
}
