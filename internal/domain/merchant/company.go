package merchant

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Company represents a merchant's storefront profile. Each user owns at most
// one company, enforced by a unique index on the owning user id. A company
// starts unapproved and its products stay hidden until an admin approves it.
type Company struct {
	shared.BaseAggregateRoot
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Email       string    `gorm:"type:varchar(200)"`
	Phone       string    `gorm:"type:varchar(30)"`
	AddressLine string    `gorm:"type:varchar(300)"`
	City        string    `gorm:"type:varchar(100)"`
	State       string    `gorm:"type:varchar(100)"`
	PostalCode  string    `gorm:"type:varchar(20)"`
	Country     string    `gorm:"type:varchar(100)"`
	Logo        string    `gorm:"type:varchar(500)"`
	Badge       string    `gorm:"type:varchar(500)"`
	Banner      string    `gorm:"type:varchar(500)"`
	IsApproved  bool      `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// ContactInfo groups the mutable contact and address fields of a company
type ContactInfo struct {
	Email       string
	Phone       string
	AddressLine string
	City        string
	State       string
	PostalCode  string
	Country     string
}

// NewCompany creates a new unapproved company for a user
func NewCompany(userID uuid.UUID, name string, contact ContactInfo) (*Company, error) {
	if err := validateCompanyName(name); err != nil {
		return nil, err
	}

	company := &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Name:              name,
		Email:             contact.Email,
		Phone:             contact.Phone,
		AddressLine:       contact.AddressLine,
		City:              contact.City,
		State:             contact.State,
		PostalCode:        contact.PostalCode,
		Country:           contact.Country,
		IsApproved:        false,
	}

	company.AddDomainEvent(NewCompanyCreatedEvent(company))

	return company, nil
}

// Update updates the company's profile fields
func (c *Company) Update(name string, contact ContactInfo) error {
	if err := validateCompanyName(name); err != nil {
		return err
	}

	c.Name = name
	c.Email = contact.Email
	c.Phone = contact.Phone
	c.AddressLine = contact.AddressLine
	c.City = contact.City
	c.State = contact.State
	c.PostalCode = contact.PostalCode
	c.Country = contact.Country
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCompanyUpdatedEvent(c))

	return nil
}

// SetBranding replaces the logo, badge, and banner image references
func (c *Company) SetBranding(logo, badge, banner string) {
	c.Logo = logo
	c.Badge = badge
	c.Banner = banner
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetApproval sets the approval flag. Idempotent: re-setting the current
// value changes nothing and emits no event.
func (c *Company) SetApproval(approved bool) {
	if c.IsApproved == approved {
		return
	}

	c.IsApproved = approved
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCompanyApprovalChangedEvent(c, approved))
}

// IsPending reports whether the company awaits approval
func (c *Company) IsPending() bool {
	return !c.IsApproved
}

// IsOwnedBy reports whether the company belongs to the given user
func (c *Company) IsOwnedBy(userID uuid.UUID) bool {
	return c.UserID == userID
}

// validateCompanyName validates the company name
func validateCompanyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("Company name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Company name cannot exceed 200 characters")
	}
	return nil
}
