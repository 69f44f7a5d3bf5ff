package catalog

import (
	"strings"
	"time"

	"github.com/marketplace/backend/internal/domain/shared"
)

// SubCategory is an embedded child entry of a Category
type SubCategory struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Category represents an admin-managed product category.
// Category names are unique case-insensitively across the marketplace.
type Category struct {
	shared.BaseAggregateRoot
	Name             string        `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_name_lower"`
	Image            string        `gorm:"type:varchar(500)"`
	HasSubCategories bool          `gorm:"not null;default:false"`
	SubCategories    []SubCategory `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, image string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Image:             image,
		SubCategories:     []SubCategory{},
	}

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// Update updates the category's name and image
func (c *Category) Update(name, image string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.Image = image
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryUpdatedEvent(c))

	return nil
}

// SetSubCategories replaces the embedded sub-category list
func (c *Category) SetSubCategories(subs []SubCategory) error {
	for _, sub := range subs {
		if strings.TrimSpace(sub.Name) == "" {
			return shared.NewValidationError("Sub-category name cannot be empty")
		}
	}

	if subs == nil {
		subs = []SubCategory{}
	}
	c.SubCategories = subs
	c.HasSubCategories = len(subs) > 0
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryUpdatedEvent(c))

	return nil
}

// AddSubCategory appends a sub-category, rejecting case-insensitive duplicates
func (c *Category) AddSubCategory(name, image string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("Sub-category name cannot be empty")
	}
	for _, sub := range c.SubCategories {
		if strings.EqualFold(sub.Name, name) {
			return shared.ErrAlreadyExists
		}
	}

	c.SubCategories = append(c.SubCategories, SubCategory{Name: name, Image: image})
	c.HasSubCategories = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryUpdatedEvent(c))

	return nil
}

// NameMatches reports whether the category name equals the given name,
// ignoring case
func (c *Category) NameMatches(name string) bool {
	return strings.EqualFold(c.Name, name)
}

// validateCategoryName validates the category name
func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewValidationError("Category name cannot exceed 100 characters")
	}
	return nil
}
