// Package admin holds the operations reserved for marketplace
// administrators: the approval workflow over products and companies.
package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"
	catalogapp "github.com/marketplace/backend/internal/application/catalog"
	merchantapp "github.com/marketplace/backend/internal/application/merchant"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/merchant"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/telemetry"
)

// Approval list statuses
const (
	StatusAll      = "all"
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// SetApprovalRequest represents an admin approval decision
type SetApprovalRequest struct {
	IsApproved *bool `json:"is_approved" binding:"required"`
}

// ApprovalService flips the approval flag on products and companies and
// serves the admin review queues. Setting the current value again is a
// no-op, so retried admin requests are harmless. Approval-changed events
// reach subscribers through the repositories' transactional outbox.
type ApprovalService struct {
	productRepo     catalog.ProductRepository
	companyRepo     merchant.CompanyRepository
	businessMetrics *telemetry.BusinessMetrics
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(productRepo catalog.ProductRepository, companyRepo merchant.CompanyRepository) *ApprovalService {
	return &ApprovalService{
		productRepo: productRepo,
		companyRepo: companyRepo,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *ApprovalService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// SetProductApproval approves or revokes a product listing
func (s *ApprovalService) SetProductApproval(ctx context.Context, productID uuid.UUID, approved bool) (*catalogapp.ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Product not found")
		}
		return nil, err
	}

	changed := product.IsApproved != approved
	product.SetApproval(approved)

	if changed {
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, err
		}
		s.recordDecision(ctx, telemetry.ApprovalEntityProduct, approved)
	}

	response := catalogapp.ToProductResponse(product)
	return &response, nil
}

// SetCompanyApproval approves or revokes a company. Revoking a company does
// not cascade to its products; their own flags decide visibility.
func (s *ApprovalService) SetCompanyApproval(ctx context.Context, companyID uuid.UUID, approved bool) (*merchantapp.CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Company not found")
		}
		return nil, err
	}

	changed := company.IsApproved != approved
	company.SetApproval(approved)

	if changed {
		if err := s.companyRepo.Save(ctx, company); err != nil {
			return nil, err
		}
		s.recordDecision(ctx, telemetry.ApprovalEntityCompany, approved)
	}

	response := merchantapp.ToCompanyResponse(company)
	return &response, nil
}

// ListProducts returns the product review queue filtered by approval status
// (all, pending, or approved)
func (s *ApprovalService) ListProducts(ctx context.Context, status string, filter shared.Filter) (*shared.Paginated[catalogapp.ProductResponse], error) {
	approved, err := parseApprovalStatus(status)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindByApproval(ctx, approved, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.CountByApproval(ctx, approved)
	if err != nil {
		return nil, err
	}

	responses := make([]catalogapp.ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, catalogapp.ToProductResponse(&products[idx]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListCompanies returns the company review queue filtered by approval status
func (s *ApprovalService) ListCompanies(ctx context.Context, status string, filter shared.Filter) (*shared.Paginated[merchantapp.CompanyResponse], error) {
	approved, err := parseApprovalStatus(status)
	if err != nil {
		return nil, err
	}

	companies, err := s.companyRepo.FindByApproval(ctx, approved, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.companyRepo.CountByApproval(ctx, approved)
	if err != nil {
		return nil, err
	}

	responses := make([]merchantapp.CompanyResponse, 0, len(companies))
	for idx := range companies {
		responses = append(responses, merchantapp.ToCompanyResponse(&companies[idx]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// parseApprovalStatus maps a status string onto the tri-state repository
// filter: nil for all, false for pending, true for approved. An empty
// status defaults to all.
func parseApprovalStatus(status string) (*bool, error) {
	switch status {
	case "", StatusAll:
		return nil, nil
	case StatusPending:
		pending := false
		return &pending, nil
	case StatusApproved:
		approved := true
		return &approved, nil
	default:
		return nil, shared.NewValidationError("Status must be all, pending, or approved")
	}
}

// recordDecision counts an effective approval flip. Idempotent repeats are
// not counted; they change nothing.
func (s *ApprovalService) recordDecision(ctx context.Context, entity telemetry.ApprovalEntity, approved bool) {
	if s.businessMetrics == nil {
		return
	}
	outcome := telemetry.ApprovalOutcomeRevoked
	if approved {
		outcome = telemetry.ApprovalOutcomeApproved
	}
	s.businessMetrics.RecordApprovalDecision(ctx, entity, outcome)
}
