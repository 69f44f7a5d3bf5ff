package shopping

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// AddressType classifies a delivery address
type AddressType string

const (
	AddressTypeHome  AddressType = "home"
	AddressTypeWork  AddressType = "work"
	AddressTypeOther AddressType = "other"
)

// IsValid checks if the value is a known address type
func (t AddressType) IsValid() bool {
	switch t {
	case AddressTypeHome, AddressTypeWork, AddressTypeOther:
		return true
	}
	return false
}

// DeliveryAddress is a user-owned delivery destination. At most one address
// per user carries IsDefault=true; the application layer clears siblings
// before setting a new default.
type DeliveryAddress struct {
	shared.OwnedAggregateRoot
	RecipientName string      `gorm:"type:varchar(200);not null"`
	Phone         string      `gorm:"type:varchar(30);not null"`
	AddressLine1  string      `gorm:"type:varchar(300);not null"`
	AddressLine2  string      `gorm:"type:varchar(300)"`
	City          string      `gorm:"type:varchar(100);not null"`
	State         string      `gorm:"type:varchar(100)"`
	PostalCode    string      `gorm:"type:varchar(20);not null"`
	Country       string      `gorm:"type:varchar(100);not null"`
	IsDefault     bool        `gorm:"not null;default:false"`
	AddressType   AddressType `gorm:"type:varchar(10);not null;default:'home'"`
}

// TableName returns the table name for GORM
func (DeliveryAddress) TableName() string {
	return "delivery_addresses"
}

// AddressFields groups the mutable fields of a delivery address
type AddressFields struct {
	RecipientName string
	Phone         string
	AddressLine1  string
	AddressLine2  string
	City          string
	State         string
	PostalCode    string
	Country       string
	AddressType   AddressType
}

// NewDeliveryAddress creates a new delivery address for a user. The default
// flag is managed by the application layer so the single-default invariant
// can be enforced across the user's whole address list.
func NewDeliveryAddress(userID uuid.UUID, fields AddressFields) (*DeliveryAddress, error) {
	if err := validateAddressFields(fields); err != nil {
		return nil, err
	}

	address := &DeliveryAddress{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		RecipientName:      fields.RecipientName,
		Phone:              fields.Phone,
		AddressLine1:       fields.AddressLine1,
		AddressLine2:       fields.AddressLine2,
		City:               fields.City,
		State:              fields.State,
		PostalCode:         fields.PostalCode,
		Country:            fields.Country,
		IsDefault:          false,
		AddressType:        fields.AddressType,
	}

	address.AddDomainEvent(NewAddressCreatedEvent(address))

	return address, nil
}

// Update updates the address fields
func (a *DeliveryAddress) Update(fields AddressFields) error {
	if err := validateAddressFields(fields); err != nil {
		return err
	}

	a.RecipientName = fields.RecipientName
	a.Phone = fields.Phone
	a.AddressLine1 = fields.AddressLine1
	a.AddressLine2 = fields.AddressLine2
	a.City = fields.City
	a.State = fields.State
	a.PostalCode = fields.PostalCode
	a.Country = fields.Country
	a.AddressType = fields.AddressType
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// SetDefault sets or clears the default flag
func (a *DeliveryAddress) SetDefault(isDefault bool) {
	if a.IsDefault == isDefault {
		return
	}

	a.IsDefault = isDefault
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	if isDefault {
		a.AddDomainEvent(NewDefaultAddressChangedEvent(a))
	}
}

// validateAddressFields validates the required address fields
func validateAddressFields(fields AddressFields) error {
	if strings.TrimSpace(fields.RecipientName) == "" {
		return shared.NewValidationError("Recipient name cannot be empty")
	}
	if strings.TrimSpace(fields.Phone) == "" {
		return shared.NewValidationError("Phone cannot be empty")
	}
	if strings.TrimSpace(fields.AddressLine1) == "" {
		return shared.NewValidationError("Address line cannot be empty")
	}
	if strings.TrimSpace(fields.City) == "" {
		return shared.NewValidationError("City cannot be empty")
	}
	if strings.TrimSpace(fields.PostalCode) == "" {
		return shared.NewValidationError("Postal code cannot be empty")
	}
	if strings.TrimSpace(fields.Country) == "" {
		return shared.NewValidationError("Country cannot be empty")
	}
	if !fields.AddressType.IsValid() {
		return shared.NewValidationError("Address type must be home, work, or other")
	}
	return nil
}
