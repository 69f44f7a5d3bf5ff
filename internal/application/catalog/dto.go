package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name             string          `json:"name" binding:"required,min=1,max=200"`
	ShortDescription string          `json:"short_description" binding:"max=500"`
	LongDescription  string          `json:"long_description" binding:"max=5000"`
	Price            decimal.Decimal `json:"price" binding:"required"`
	OfferPrice       decimal.Decimal `json:"offer_price" binding:"required"`
	Quantity         int             `json:"quantity" binding:"min=0"`
	Category         string          `json:"category" binding:"required,oneof=food powder paste accessories"`
	SubCategory      string          `json:"sub_category" binding:"max=100"`
	FoodType         *string         `json:"food_type" binding:"omitempty,oneof=veg non_veg"`
	Images           []string        `json:"images"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name             *string          `json:"name" binding:"omitempty,min=1,max=200"`
	ShortDescription *string          `json:"short_description" binding:"omitempty,max=500"`
	LongDescription  *string          `json:"long_description" binding:"omitempty,max=5000"`
	Price            *decimal.Decimal `json:"price"`
	OfferPrice       *decimal.Decimal `json:"offer_price"`
	Quantity         *int             `json:"quantity" binding:"omitempty,min=0"`
	Category         *string          `json:"category" binding:"omitempty,oneof=food powder paste accessories"`
	SubCategory      *string          `json:"sub_category" binding:"omitempty,max=100"`
	FoodType         *string          `json:"food_type" binding:"omitempty,oneof=veg non_veg"`
	Images           []string         `json:"images"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	CompanyID        uuid.UUID       `json:"company_id"`
	Name             string          `json:"name"`
	ShortDescription string          `json:"short_description"`
	LongDescription  string          `json:"long_description"`
	Price            decimal.Decimal `json:"price"`
	OfferPrice       decimal.Decimal `json:"offer_price"`
	Savings          decimal.Decimal `json:"savings"`
	Quantity         int             `json:"quantity"`
	Category         string          `json:"category"`
	SubCategory      string          `json:"sub_category"`
	FoodType         *string         `json:"food_type,omitempty"`
	Images           []string        `json:"images"`
	IsApproved       bool            `json:"is_approved"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Version          int             `json:"version"`
}

// ProductListFilter represents filter options for product lists
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category" binding:"omitempty,oneof=food powder paste accessories"`
	FoodType string `form:"food_type" binding:"omitempty,oneof=veg non_veg"`
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	var foodType *string
	if p.FoodType != nil {
		value := string(*p.FoodType)
		foodType = &value
	}
	return ProductResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		CompanyID:        p.CompanyID,
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		Price:            p.Price,
		OfferPrice:       p.OfferPrice,
		Savings:          p.GetSavings(),
		Quantity:         p.Quantity,
		Category:         string(p.Category),
		SubCategory:      p.SubCategory,
		FoodType:         foodType,
		Images:           p.Images,
		IsApproved:       p.IsApproved,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		Version:          p.Version,
	}
}

// SubCategoryRequest represents one sub-category entry in category requests
type SubCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Image string `json:"image" binding:"max=500"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name          string               `json:"name" binding:"required,min=1,max=100"`
	Image         string               `json:"image" binding:"max=500"`
	SubCategories []SubCategoryRequest `json:"sub_categories"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name          string               `json:"name" binding:"required,min=1,max=100"`
	Image         string               `json:"image" binding:"max=500"`
	SubCategories []SubCategoryRequest `json:"sub_categories"`
}

// SubCategoryResponse represents one sub-category entry in API responses
type SubCategoryResponse struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID               uuid.UUID             `json:"id"`
	Name             string                `json:"name"`
	Image            string                `json:"image,omitempty"`
	HasSubCategories bool                  `json:"has_sub_categories"`
	SubCategories    []SubCategoryResponse `json:"sub_categories"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	subs := make([]SubCategoryResponse, 0, len(c.SubCategories))
	for _, sub := range c.SubCategories {
		subs = append(subs, SubCategoryResponse{Name: sub.Name, Image: sub.Image})
	}
	return CategoryResponse{
		ID:               c.ID,
		Name:             c.Name,
		Image:            c.Image,
		HasSubCategories: c.HasSubCategories,
		SubCategories:    subs,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// toSubCategories maps request sub-categories to the domain representation
func toSubCategories(reqs []SubCategoryRequest) []catalog.SubCategory {
	subs := make([]catalog.SubCategory, 0, len(reqs))
	for _, req := range reqs {
		subs = append(subs, catalog.SubCategory{Name: req.Name, Image: req.Image})
	}
	return subs
}

// toFilter maps a product list filter to the repository filter
func (f ProductListFilter) toFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.Search != "" {
		filter.Search = f.Search
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	if f.Category != "" {
		filter.Filters["category"] = f.Category
	}
	if f.FoodType != "" {
		filter.Filters["food_type"] = f.FoodType
	}
	return filter
}
