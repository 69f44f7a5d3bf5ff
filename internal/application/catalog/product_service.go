package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/merchant"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ProductService handles product-related business operations. Sellers manage
// their own listings; shoppers only ever see the approved subset.
type ProductService struct {
	productRepo    catalog.ProductRepository
	companyRepo    merchant.CompanyRepository
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, companyRepo merchant.CompanyRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		companyRepo: companyRepo,
	}
}

// SetEventPublisher sets the publisher for delete notifications. Events
// raised while saving travel through the repository's transactional outbox
// instead.
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product under the seller's company. The product
// starts unapproved and stays invisible to shoppers until an admin approves
// it.
func (s *ProductService) Create(ctx context.Context, userID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	company, err := s.companyRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Register a company before listing products")
		}
		return nil, err
	}

	var foodType *catalog.FoodType
	if req.FoodType != nil {
		value := catalog.FoodType(*req.FoodType)
		foodType = &value
	}

	product, err := catalog.NewProduct(
		userID,
		company.ID,
		req.Name,
		req.Price,
		req.OfferPrice,
		req.Quantity,
		catalog.ProductCategory(req.Category),
		foodType,
	)
	if err != nil {
		return nil, err
	}

	product.ShortDescription = req.ShortDescription
	product.LongDescription = req.LongDescription
	product.SubCategory = req.SubCategory
	if len(req.Images) > 0 {
		product.Images = req.Images
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Get returns one product by ID regardless of approval state. Visibility
// filtering for shoppers happens in the list operations.
func (s *ProductService) Get(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// ListApproved returns the shopper-visible catalog: approved products only
func (s *ProductService) ListApproved(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	repoFilter := filter.toFilter()

	products, err := s.productRepo.FindApproved(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	approved := true
	total, err := s.productRepo.CountByApproval(ctx, &approved)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(toProductResponses(products), total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// ListMine returns all products owned by the seller, approved or not
func (s *ProductService) ListMine(ctx context.Context, userID uuid.UUID, filter ProductListFilter) ([]ProductResponse, error) {
	company, err := s.companyRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return []ProductResponse{}, nil
		}
		return nil, err
	}

	products, err := s.productRepo.FindByCompany(ctx, company.ID, filter.toFilter())
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// ListByCompany returns the approved products of one company's storefront
func (s *ProductService) ListByCompany(ctx context.Context, companyID uuid.UUID, filter ProductListFilter) ([]ProductResponse, error) {
	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Company not found")
		}
		return nil, err
	}

	products, err := s.productRepo.FindByCompany(ctx, companyID, filter.toFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		if !products[idx].IsApproved {
			continue
		}
		responses = append(responses, ToProductResponse(&products[idx]))
	}
	return responses, nil
}

// Update updates a product owned by the seller. All descriptive, pricing,
// stock, and image fields may change; the approval flag may not.
func (s *ProductService) Update(ctx context.Context, userID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.findOwnedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	shortDescription := product.ShortDescription
	if req.ShortDescription != nil {
		shortDescription = *req.ShortDescription
	}
	longDescription := product.LongDescription
	if req.LongDescription != nil {
		longDescription = *req.LongDescription
	}
	subCategory := product.SubCategory
	if req.SubCategory != nil {
		subCategory = *req.SubCategory
	}
	if err := product.Update(name, shortDescription, longDescription, subCategory); err != nil {
		return nil, err
	}

	if req.Price != nil || req.OfferPrice != nil {
		price := product.Price
		if req.Price != nil {
			price = *req.Price
		}
		offerPrice := product.OfferPrice
		if req.OfferPrice != nil {
			offerPrice = *req.OfferPrice
		}
		if err := product.SetPrices(price, offerPrice); err != nil {
			return nil, err
		}
	}

	if req.Category != nil || req.FoodType != nil {
		category := product.Category
		if req.Category != nil {
			category = catalog.ProductCategory(*req.Category)
		}
		foodType := product.FoodType
		if req.FoodType != nil {
			value := catalog.FoodType(*req.FoodType)
			foodType = &value
		}
		if err := product.SetCategory(category, product.SubCategory, foodType); err != nil {
			return nil, err
		}
	}

	if req.Quantity != nil {
		if err := product.SetStock(*req.Quantity); err != nil {
			return nil, err
		}
	}

	if req.Images != nil {
		product.SetImages(req.Images)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product owned by the seller
func (s *ProductService) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	product, err := s.findOwnedProduct(ctx, userID, productID)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, catalog.NewProductDeletedEvent(product))
	}

	return nil
}

// findProduct loads a product, translating a missing record into the API's
// not-found error
func (s *ProductService) findProduct(ctx context.Context, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Product not found")
		}
		return nil, err
	}
	return product, nil
}

// findOwnedProduct loads a product and checks ownership. A product owned by
// another seller reads as not found.
func (s *ProductService) findOwnedProduct(ctx context.Context, userID, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByIDForUser(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Product not found")
		}
		return nil, err
	}
	return product, nil
}

func toProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, ToProductResponse(&products[idx]))
	}
	return responses
}
