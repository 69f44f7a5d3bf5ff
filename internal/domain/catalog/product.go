package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductCategory represents the top-level category of a product
type ProductCategory string

const (
	ProductCategoryFood        ProductCategory = "food"
	ProductCategoryPowder      ProductCategory = "powder"
	ProductCategoryPaste       ProductCategory = "paste"
	ProductCategoryAccessories ProductCategory = "accessories"
)

// FoodType classifies edible products
type FoodType string

const (
	FoodTypeVeg    FoodType = "veg"
	FoodTypeNonVeg FoodType = "non_veg"
)

// Product represents a sellable item in the marketplace catalog
// It is the aggregate root for product-related operations. A product starts
// unapproved and becomes visible to shoppers only after admin approval.
type Product struct {
	shared.OwnedAggregateRoot
	CompanyID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name             string          `gorm:"type:varchar(200);not null"`
	ShortDescription string          `gorm:"type:varchar(500)"`
	LongDescription  string          `gorm:"type:text"`
	Price            decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Original list price
	OfferPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Current selling price
	Quantity         int             `gorm:"not null;default:0"`                    // Stock on hand
	Category         ProductCategory `gorm:"type:varchar(20);not null;index"`
	SubCategory      string          `gorm:"type:varchar(100)"`
	FoodType         *FoodType       `gorm:"type:varchar(10)"`
	Images           []string        `gorm:"serializer:json"`
	IsApproved       bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new unapproved product owned by a merchant user
func NewProduct(userID, companyID uuid.UUID, name string, price, offerPrice decimal.Decimal, quantity int, category ProductCategory, foodType *FoodType) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validatePrices(price, offerPrice); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, shared.NewValidationError("Stock quantity cannot be negative")
	}
	if err := validateCategory(category, foodType); err != nil {
		return nil, err
	}

	product := &Product{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		CompanyID:          companyID,
		Name:               name,
		Price:              price,
		OfferPrice:         offerPrice,
		Quantity:           quantity,
		Category:           category,
		FoodType:           foodType,
		Images:             []string{},
		IsApproved:         false,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's descriptive fields
func (p *Product) Update(name, shortDescription, longDescription, subCategory string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.ShortDescription = shortDescription
	p.LongDescription = longDescription
	p.SubCategory = subCategory
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrices sets the original and offer prices
func (p *Product) SetPrices(price, offerPrice decimal.Decimal) error {
	if err := validatePrices(price, offerPrice); err != nil {
		return err
	}

	p.Price = price
	p.OfferPrice = offerPrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetCategory sets the product category and food type
func (p *Product) SetCategory(category ProductCategory, subCategory string, foodType *FoodType) error {
	if err := validateCategory(category, foodType); err != nil {
		return err
	}

	p.Category = category
	p.SubCategory = subCategory
	p.FoodType = foodType
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetStock sets the available stock quantity
func (p *Product) SetStock(quantity int) error {
	if quantity < 0 {
		return shared.NewValidationError("Stock quantity cannot be negative")
	}

	p.Quantity = quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetImages replaces the product image references
func (p *Product) SetImages(images []string) {
	if images == nil {
		images = []string{}
	}
	p.Images = images
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetApproval sets the approval flag. The operation is idempotent: setting
// the current value again changes nothing and emits no event.
func (p *Product) SetApproval(approved bool) {
	if p.IsApproved == approved {
		return
	}

	p.IsApproved = approved
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductApprovalChangedEvent(p, approved))
}

// IsPurchasable reports whether shoppers may list or add this product
func (p *Product) IsPurchasable() bool {
	return p.IsApproved
}

// IsPending reports whether the product awaits approval
func (p *Product) IsPending() bool {
	return !p.IsApproved
}

// GetPriceMoney returns the original price as a Money value object
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Price)
}

// GetOfferPriceMoney returns the selling price as a Money value object
func (p *Product) GetOfferPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.OfferPrice)
}

// GetSavings returns the per-unit difference between price and offer price
func (p *Product) GetSavings() decimal.Decimal {
	return p.Price.Sub(p.OfferPrice)
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewValidationError("Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Product name cannot exceed 200 characters")
	}
	return nil
}

// validatePrices validates the original and offer prices
func validatePrices(price, offerPrice decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewValidationError("Price cannot be negative")
	}
	if offerPrice.IsNegative() {
		return shared.NewValidationError("Offer price cannot be negative")
	}
	return nil
}

// validateCategory validates the category and the food type requirement
func validateCategory(category ProductCategory, foodType *FoodType) error {
	switch category {
	case ProductCategoryFood, ProductCategoryPowder:
		if foodType == nil {
			return shared.NewValidationError("Food type is required for food and powder products")
		}
		if *foodType != FoodTypeVeg && *foodType != FoodTypeNonVeg {
			return shared.NewValidationError("Food type must be veg or non_veg")
		}
	case ProductCategoryPaste, ProductCategoryAccessories:
		// food type optional for non-edible categories
	default:
		return shared.NewValidationError("Unknown product category")
	}
	return nil
}
