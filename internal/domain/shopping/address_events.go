package shopping

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeDeliveryAddress = "DeliveryAddress"

// Event type constants
const (
	EventTypeAddressCreated        = "AddressCreated"
	EventTypeAddressDeleted        = "AddressDeleted"
	EventTypeDefaultAddressChanged = "DefaultAddressChanged"
)

// AddressCreatedEvent is published when a delivery address is created
type AddressCreatedEvent struct {
	shared.BaseDomainEvent
	AddressID uuid.UUID `json:"address_id"`
	UserID    uuid.UUID `json:"user_id"`
}

// NewAddressCreatedEvent creates a new AddressCreatedEvent
func NewAddressCreatedEvent(address *DeliveryAddress) *AddressCreatedEvent {
	return &AddressCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAddressCreated, AggregateTypeDeliveryAddress, address.ID),
		AddressID:       address.ID,
		UserID:          address.UserID,
	}
}

// AddressDeletedEvent is published when a delivery address is deleted
type AddressDeletedEvent struct {
	shared.BaseDomainEvent
	AddressID  uuid.UUID `json:"address_id"`
	UserID     uuid.UUID `json:"user_id"`
	WasDefault bool      `json:"was_default"`
}

// NewAddressDeletedEvent creates a new AddressDeletedEvent
func NewAddressDeletedEvent(address *DeliveryAddress) *AddressDeletedEvent {
	return &AddressDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAddressDeleted, AggregateTypeDeliveryAddress, address.ID),
		AddressID:       address.ID,
		UserID:          address.UserID,
		WasDefault:      address.IsDefault,
	}
}

// DefaultAddressChangedEvent is published when an address becomes the
// user's default
type DefaultAddressChangedEvent struct {
	shared.BaseDomainEvent
	AddressID uuid.UUID `json:"address_id"`
	UserID    uuid.UUID `json:"user_id"`
}

// NewDefaultAddressChangedEvent creates a new DefaultAddressChangedEvent
func NewDefaultAddressChangedEvent(address *DeliveryAddress) *DefaultAddressChangedEvent {
	return &DefaultAddressChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDefaultAddressChanged, AggregateTypeDeliveryAddress, address.ID),
		AddressID:       address.ID,
		UserID:          address.UserID,
	}
}
