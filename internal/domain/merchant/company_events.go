package merchant

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCompany = "Company"

// Event type constants
const (
	EventTypeCompanyCreated         = "CompanyCreated"
	EventTypeCompanyUpdated         = "CompanyUpdated"
	EventTypeCompanyApprovalChanged = "CompanyApprovalChanged"
)

// CompanyCreatedEvent is published when a new company is created
type CompanyCreatedEvent struct {
	shared.BaseDomainEvent
	CompanyID uuid.UUID `json:"company_id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
}

// NewCompanyCreatedEvent creates a new CompanyCreatedEvent
func NewCompanyCreatedEvent(company *Company) *CompanyCreatedEvent {
	return &CompanyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyCreated, AggregateTypeCompany, company.ID),
		CompanyID:       company.ID,
		UserID:          company.UserID,
		Name:            company.Name,
	}
}

// CompanyUpdatedEvent is published when a company profile is updated
type CompanyUpdatedEvent struct {
	shared.BaseDomainEvent
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
}

// NewCompanyUpdatedEvent creates a new CompanyUpdatedEvent
func NewCompanyUpdatedEvent(company *Company) *CompanyUpdatedEvent {
	return &CompanyUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyUpdated, AggregateTypeCompany, company.ID),
		CompanyID:       company.ID,
		Name:            company.Name,
	}
}

// CompanyApprovalChangedEvent is published when the approval flag flips
type CompanyApprovalChangedEvent struct {
	shared.BaseDomainEvent
	CompanyID  uuid.UUID `json:"company_id"`
	UserID     uuid.UUID `json:"user_id"`
	IsApproved bool      `json:"is_approved"`
}

// NewCompanyApprovalChangedEvent creates a new CompanyApprovalChangedEvent
func NewCompanyApprovalChangedEvent(company *Company, approved bool) *CompanyApprovalChangedEvent {
	return &CompanyApprovalChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyApprovalChanged, AggregateTypeCompany, company.ID),
		CompanyID:       company.ID,
		UserID:          company.UserID,
		IsApproved:      approved,
	}
}
