package merchant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/merchant"
	"github.com/marketplace/backend/internal/domain/shared"
)

// CompanyService manages seller company profiles. Each user owns at most one
// company, so writes go through a single upsert operation. Company events
// are delivered through the repository's transactional outbox.
type CompanyService struct {
	companyRepo merchant.CompanyRepository
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo merchant.CompanyRepository) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
	}
}

// Upsert creates the user's company on first call and updates it afterwards.
// A new company starts unapproved; updating never touches the approval flag.
func (s *CompanyService) Upsert(ctx context.Context, userID uuid.UUID, req UpsertCompanyRequest) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		company, err = merchant.NewCompany(userID, req.Name, toContactInfo(req))
		if err != nil {
			return nil, err
		}
	} else {
		if err := company.Update(req.Name, toContactInfo(req)); err != nil {
			return nil, err
		}
	}

	company.SetBranding(req.Logo, req.Badge, req.Banner)

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	response := ToCompanyResponse(company)
	return &response, nil
}

// GetMine returns the calling seller's company
func (s *CompanyService) GetMine(ctx context.Context, userID uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Company not found")
		}
		return nil, err
	}
	response := ToCompanyResponse(company)
	return &response, nil
}

// Get returns one company by ID
func (s *CompanyService) Get(ctx context.Context, companyID uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Company not found")
		}
		return nil, err
	}
	response := ToCompanyResponse(company)
	return &response, nil
}

// ListApproved returns the shopper-visible storefront directory
func (s *CompanyService) ListApproved(ctx context.Context, filter shared.Filter) (*shared.Paginated[CompanyResponse], error) {
	approved := true
	companies, err := s.companyRepo.FindByApproval(ctx, &approved, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.companyRepo.CountByApproval(ctx, &approved)
	if err != nil {
		return nil, err
	}

	responses := make([]CompanyResponse, 0, len(companies))
	for idx := range companies {
		responses = append(responses, ToCompanyResponse(&companies[idx]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}
