package shopping

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCart = "Cart"

// Event type constants
const (
	EventTypeCartCreated     = "CartCreated"
	EventTypeCartItemAdded   = "CartItemAdded"
	EventTypeCartItemRemoved = "CartItemRemoved"
	EventTypeCartCleared     = "CartCleared"
)

// CartCreatedEvent is published when a cart is lazily created for a user
type CartCreatedEvent struct {
	shared.BaseDomainEvent
	CartID uuid.UUID `json:"cart_id"`
	UserID uuid.UUID `json:"user_id"`
}

// NewCartCreatedEvent creates a new CartCreatedEvent
func NewCartCreatedEvent(cart *Cart) *CartCreatedEvent {
	return &CartCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartCreated, AggregateTypeCart, cart.ID),
		CartID:          cart.ID,
		UserID:          cart.UserID,
	}
}

// CartItemAddedEvent is published when a product is added or merged into
// an existing line
type CartItemAddedEvent struct {
	shared.BaseDomainEvent
	CartID    uuid.UUID `json:"cart_id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// NewCartItemAddedEvent creates a new CartItemAddedEvent
func NewCartItemAddedEvent(cart *Cart, productID uuid.UUID, quantity int) *CartItemAddedEvent {
	return &CartItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartItemAdded, AggregateTypeCart, cart.ID),
		CartID:          cart.ID,
		UserID:          cart.UserID,
		ProductID:       productID,
		Quantity:        quantity,
	}
}

// CartItemRemovedEvent is published when a line is removed from the cart
type CartItemRemovedEvent struct {
	shared.BaseDomainEvent
	CartID    uuid.UUID `json:"cart_id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
}

// NewCartItemRemovedEvent creates a new CartItemRemovedEvent
func NewCartItemRemovedEvent(cart *Cart, productID uuid.UUID) *CartItemRemovedEvent {
	return &CartItemRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartItemRemoved, AggregateTypeCart, cart.ID),
		CartID:          cart.ID,
		UserID:          cart.UserID,
		ProductID:       productID,
	}
}

// CartClearedEvent is published when the cart is emptied
type CartClearedEvent struct {
	shared.BaseDomainEvent
	CartID uuid.UUID `json:"cart_id"`
	UserID uuid.UUID `json:"user_id"`
}

// NewCartClearedEvent creates a new CartClearedEvent
func NewCartClearedEvent(cart *Cart) *CartClearedEvent {
	return &CartClearedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartCleared, AggregateTypeCart, cart.ID),
		CartID:          cart.ID,
		UserID:          cart.UserID,
	}
}
