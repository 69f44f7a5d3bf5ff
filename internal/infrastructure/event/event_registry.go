package event

import (
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/merchant"
	"github.com/marketplace/backend/internal/domain/shopping"
)

// RegisterAllEvents registers all domain event types with the serializer
// This is required for the OutboxProcessor to deserialize events from the outbox table
func RegisterAllEvents(serializer *EventSerializer) {
	// Catalog domain - Product events
	serializer.Register(catalog.EventTypeProductCreated, &catalog.ProductCreatedEvent{})
	serializer.Register(catalog.EventTypeProductUpdated, &catalog.ProductUpdatedEvent{})
	serializer.Register(catalog.EventTypeProductApprovalChanged, &catalog.ProductApprovalChangedEvent{})
	serializer.Register(catalog.EventTypeProductDeleted, &catalog.ProductDeletedEvent{})

	// Catalog domain - Category events
	serializer.Register(catalog.EventTypeCategoryCreated, &catalog.CategoryCreatedEvent{})
	serializer.Register(catalog.EventTypeCategoryUpdated, &catalog.CategoryUpdatedEvent{})
	serializer.Register(catalog.EventTypeCategoryDeleted, &catalog.CategoryDeletedEvent{})

	// Merchant domain - Company events
	serializer.Register(merchant.EventTypeCompanyCreated, &merchant.CompanyCreatedEvent{})
	serializer.Register(merchant.EventTypeCompanyUpdated, &merchant.CompanyUpdatedEvent{})
	serializer.Register(merchant.EventTypeCompanyApprovalChanged, &merchant.CompanyApprovalChangedEvent{})

	// Shopping domain - Cart events
	serializer.Register(shopping.EventTypeCartCreated, &shopping.CartCreatedEvent{})
	serializer.Register(shopping.EventTypeCartItemAdded, &shopping.CartItemAddedEvent{})
	serializer.Register(shopping.EventTypeCartItemRemoved, &shopping.CartItemRemovedEvent{})
	serializer.Register(shopping.EventTypeCartCleared, &shopping.CartClearedEvent{})

	// Shopping domain - Delivery address events
	serializer.Register(shopping.EventTypeAddressCreated, &shopping.AddressCreatedEvent{})
	serializer.Register(shopping.EventTypeAddressDeleted, &shopping.AddressDeletedEvent{})
	serializer.Register(shopping.EventTypeDefaultAddressChanged, &shopping.DefaultAddressChangedEvent{})
}
