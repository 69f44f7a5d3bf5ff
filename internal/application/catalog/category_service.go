package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// CategoryService handles the admin-curated category tree. Category names
// are unique case-insensitively across the marketplace.
type CategoryService struct {
	categoryRepo   catalog.CategoryRepository
	eventPublisher shared.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CategoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new category, rejecting case-insensitive name duplicates
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Category with this name already exists")
	}

	category, err := catalog.NewCategory(req.Name, req.Image)
	if err != nil {
		return nil, err
	}

	if len(req.SubCategories) > 0 {
		if err := category.SetSubCategories(toSubCategories(req.SubCategories)); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, category)

	response := ToCategoryResponse(category)
	return &response, nil
}

// Get returns one category by ID
func (s *CategoryService) Get(ctx context.Context, categoryID uuid.UUID) (*CategoryResponse, error) {
	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List returns all categories
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for idx := range categories {
		responses = append(responses, ToCategoryResponse(&categories[idx]))
	}
	return responses, nil
}

// Update renames a category and replaces its fields. Renaming to a name
// already used by another category (in any letter case) is rejected.
func (s *CategoryService) Update(ctx context.Context, categoryID uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if !category.NameMatches(req.Name) {
		exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Category with this name already exists")
		}
	}

	if err := category.Update(req.Name, req.Image); err != nil {
		return nil, err
	}

	if req.SubCategories != nil {
		if err := category.SetSubCategories(toSubCategories(req.SubCategories)); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, category)

	response := ToCategoryResponse(category)
	return &response, nil
}

// AddSubCategory appends a sub-category to an existing category
func (s *CategoryService) AddSubCategory(ctx context.Context, categoryID uuid.UUID, req SubCategoryRequest) (*CategoryResponse, error) {
	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if err := category.AddSubCategory(req.Name, req.Image); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Sub-category with this name already exists")
		}
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, category)

	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete removes a category
func (s *CategoryService) Delete(ctx context.Context, categoryID uuid.UUID) error {
	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, category.ID); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, catalog.NewCategoryDeletedEvent(category))
	}

	return nil
}

// findCategory loads a category, translating a missing record into the
// API's not-found error
func (s *CategoryService) findCategory(ctx context.Context, categoryID uuid.UUID) (*catalog.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Category not found")
		}
		return nil, err
	}
	return category, nil
}

// publishEvents publishes and clears the category's pending domain events
func (s *CategoryService) publishEvents(ctx context.Context, category *catalog.Category) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range category.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	category.ClearDomainEvents()
}
