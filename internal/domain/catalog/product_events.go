package catalog

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated         = "ProductCreated"
	EventTypeProductUpdated         = "ProductUpdated"
	EventTypeProductApprovalChanged = "ProductApprovalChanged"
	EventTypeProductDeleted         = "ProductDeleted"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	CompanyID uuid.UUID       `json:"company_id"`
	Name      string          `json:"name"`
	Category  ProductCategory `json:"category"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		CompanyID:       product.CompanyID,
		Name:            product.Name,
		Category:        product.Category,
	}
}

// ProductUpdatedEvent is published when a product is updated
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
	}
}

// ProductApprovalChangedEvent is published when the approval flag flips
type ProductApprovalChangedEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID `json:"product_id"`
	CompanyID  uuid.UUID `json:"company_id"`
	IsApproved bool      `json:"is_approved"`
}

// NewProductApprovalChangedEvent creates a new ProductApprovalChangedEvent
func NewProductApprovalChangedEvent(product *Product, approved bool) *ProductApprovalChangedEvent {
	return &ProductApprovalChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductApprovalChanged, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		CompanyID:       product.CompanyID,
		IsApproved:      approved,
	}
}

// ProductDeletedEvent is published when a product is deleted
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(product *Product) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		CompanyID:       product.CompanyID,
		Name:            product.Name,
	}
}
