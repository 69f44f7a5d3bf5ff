package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shopping"
	"github.com/shopspring/decimal"
)

// AddCartItemRequest represents a request to add a product to the cart
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  *int      `json:"quantity" binding:"omitempty,min=1"`
}

// QuantityOrDefault returns the requested quantity, defaulting to 1 when
// unspecified
func (r AddCartItemRequest) QuantityOrDefault() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

// UpdateCartItemRequest represents a request to set an item's quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// CartItemResponse represents one cart line in API responses
type CartItemResponse struct {
	ProductID    uuid.UUID       `json:"product_id"`
	CompanyID    uuid.UUID       `json:"company_id"`
	Name         string          `json:"name"`
	ProductImage string          `json:"product_image"`
	CompanyName  string          `json:"company_name,omitempty"`
	CompanyLogo  string          `json:"company_logo,omitempty"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	OfferPrice   decimal.Decimal `json:"offer_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// CartResponse represents the cart in API responses
type CartResponse struct {
	ID           *uuid.UUID         `json:"id,omitempty"`
	UserID       uuid.UUID          `json:"user_id"`
	Items        []CartItemResponse `json:"items"`
	TotalItems   int                `json:"total_items"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	TotalSavings decimal.Decimal    `json:"total_savings"`
	UpdatedAt    *time.Time         `json:"updated_at,omitempty"`
}

// EmptyCartResponse returns the projection served when a user has no cart
// record yet
func EmptyCartResponse(userID uuid.UUID) *CartResponse {
	return &CartResponse{
		UserID:       userID,
		Items:        []CartItemResponse{},
		TotalItems:   0,
		TotalAmount:  decimal.Zero,
		TotalSavings: decimal.Zero,
	}
}

// CreateAddressRequest represents a request to create a delivery address
type CreateAddressRequest struct {
	RecipientName string `json:"recipient_name" binding:"required,min=1,max=200"`
	Phone         string `json:"phone" binding:"required,min=1,max=30"`
	AddressLine1  string `json:"address_line1" binding:"required,min=1,max=300"`
	AddressLine2  string `json:"address_line2" binding:"max=300"`
	City          string `json:"city" binding:"required,min=1,max=100"`
	State         string `json:"state" binding:"max=100"`
	PostalCode    string `json:"postal_code" binding:"required,min=1,max=20"`
	Country       string `json:"country" binding:"required,min=1,max=100"`
	AddressType   string `json:"address_type" binding:"omitempty,oneof=home work other"`
	IsDefault     bool   `json:"is_default"`
}

// UpdateAddressRequest represents a request to update a delivery address
type UpdateAddressRequest struct {
	RecipientName string `json:"recipient_name" binding:"required,min=1,max=200"`
	Phone         string `json:"phone" binding:"required,min=1,max=30"`
	AddressLine1  string `json:"address_line1" binding:"required,min=1,max=300"`
	AddressLine2  string `json:"address_line2" binding:"max=300"`
	City          string `json:"city" binding:"required,min=1,max=100"`
	State         string `json:"state" binding:"max=100"`
	PostalCode    string `json:"postal_code" binding:"required,min=1,max=20"`
	Country       string `json:"country" binding:"required,min=1,max=100"`
	AddressType   string `json:"address_type" binding:"omitempty,oneof=home work other"`
	IsDefault     *bool  `json:"is_default"`
}

// AddressResponse represents a delivery address in API responses
type AddressResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	RecipientName string    `json:"recipient_name"`
	Phone         string    `json:"phone"`
	AddressLine1  string    `json:"address_line1"`
	AddressLine2  string    `json:"address_line2,omitempty"`
	City          string    `json:"city"`
	State         string    `json:"state,omitempty"`
	PostalCode    string    `json:"postal_code"`
	Country       string    `json:"country"`
	IsDefault     bool      `json:"is_default"`
	AddressType   string    `json:"address_type"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToAddressResponse maps a domain address to its API representation
func ToAddressResponse(address *shopping.DeliveryAddress) AddressResponse {
	return AddressResponse{
		ID:            address.ID,
		UserID:        address.UserID,
		RecipientName: address.RecipientName,
		Phone:         address.Phone,
		AddressLine1:  address.AddressLine1,
		AddressLine2:  address.AddressLine2,
		City:          address.City,
		State:         address.State,
		PostalCode:    address.PostalCode,
		Country:       address.Country,
		IsDefault:     address.IsDefault,
		AddressType:   string(address.AddressType),
		CreatedAt:     address.CreatedAt,
		UpdatedAt:     address.UpdatedAt,
	}
}

// addressFieldsFromCreate maps a create request to domain address fields
func addressFieldsFromCreate(req CreateAddressRequest) shopping.AddressFields {
	addressType := shopping.AddressType(req.AddressType)
	if req.AddressType == "" {
		addressType = shopping.AddressTypeHome
	}
	return shopping.AddressFields{
		RecipientName: req.RecipientName,
		Phone:         req.Phone,
		AddressLine1:  req.AddressLine1,
		AddressLine2:  req.AddressLine2,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		AddressType:   addressType,
	}
}

// addressFieldsFromUpdate maps an update request to domain address fields.
// An omitted address_type keeps the address's current type.
func addressFieldsFromUpdate(req UpdateAddressRequest, current shopping.AddressType) shopping.AddressFields {
	addressType := shopping.AddressType(req.AddressType)
	if req.AddressType == "" {
		addressType = current
	}
	return shopping.AddressFields{
		RecipientName: req.RecipientName,
		Phone:         req.Phone,
		AddressLine1:  req.AddressLine1,
		AddressLine2:  req.AddressLine2,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		AddressType:   addressType,
	}
}
