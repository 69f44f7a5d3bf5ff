package merchant

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/merchant"
)

// UpsertCompanyRequest represents a request to create or update the seller's
// company profile
type UpsertCompanyRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Phone       string `json:"phone" binding:"max=30"`
	AddressLine string `json:"address_line" binding:"max=300"`
	City        string `json:"city" binding:"max=100"`
	State       string `json:"state" binding:"max=100"`
	PostalCode  string `json:"postal_code" binding:"max=20"`
	Country     string `json:"country" binding:"max=100"`
	Logo        string `json:"logo" binding:"max=500"`
	Badge       string `json:"badge" binding:"max=500"`
	Banner      string `json:"banner" binding:"max=500"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	AddressLine string    `json:"address_line,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	PostalCode  string    `json:"postal_code,omitempty"`
	Country     string    `json:"country,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	Badge       string    `json:"badge,omitempty"`
	Banner      string    `json:"banner,omitempty"`
	IsApproved  bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCompanyResponse converts a domain Company to CompanyResponse
func ToCompanyResponse(c *merchant.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		AddressLine: c.AddressLine,
		City:        c.City,
		State:       c.State,
		PostalCode:  c.PostalCode,
		Country:     c.Country,
		Logo:        c.Logo,
		Badge:       c.Badge,
		Banner:      c.Banner,
		IsApproved:  c.IsApproved,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// toContactInfo maps request fields to the domain contact value
func toContactInfo(req UpsertCompanyRequest) merchant.ContactInfo {
	return merchant.ContactInfo{
		Email:       req.Email,
		Phone:       req.Phone,
		AddressLine: req.AddressLine,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		Country:     req.Country,
	}
}
