package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CartItem represents one line in a cart. Price, offer price, and display
// fields are snapshots taken from the product at first insertion and are not
// refreshed when the same product is added again.
type CartItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CartID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CompanyID    uuid.UUID       `gorm:"type:uuid;not null"`
	Name         string          `gorm:"type:varchar(200);not null"`
	ProductImage string          `gorm:"type:varchar(500)"`
	Quantity     int             `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:decimal(18,2);not null"` // Original unit price snapshot
	OfferPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"` // Selling unit price snapshot
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal returns offer price times quantity for this line
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.OfferPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Savings returns (price - offerPrice) times quantity for this line
func (i *CartItem) Savings() decimal.Decimal {
	return i.Price.Sub(i.OfferPrice).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemSnapshot carries the product fields copied into a CartItem when it is
// first inserted
type ItemSnapshot struct {
	ProductID    uuid.UUID
	CompanyID    uuid.UUID
	Name         string
	ProductImage string
	Price        decimal.Decimal
	OfferPrice   decimal.Decimal
}

// Cart is the per-user shopping cart aggregate root. It owns its line items
// and the derived totals, which are recomputed from the full item list after
// every structural mutation so they can never drift from the items once the
// aggregate is persisted in a single write.
type Cart struct {
	shared.OwnedAggregateRoot
	Items        []CartItem      `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	TotalItems   int             `gorm:"not null;default:0"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalSavings decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) *Cart {
	cart := &Cart{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Items:              []CartItem{},
		TotalItems:         0,
		TotalAmount:        decimal.Zero,
		TotalSavings:       decimal.Zero,
	}

	cart.AddDomainEvent(NewCartCreatedEvent(cart))

	return cart
}

// AddItem adds a product to the cart. If a line for the same product already
// exists its quantity is incremented and the original snapshot is kept;
// otherwise a new line is appended from the given snapshot.
func (c *Cart) AddItem(snapshot ItemSnapshot, quantity int) error {
	if quantity < 1 {
		return shared.NewValidationError("Quantity must be at least 1")
	}
	if snapshot.ProductID == uuid.Nil {
		return shared.NewValidationError("Product ID cannot be empty")
	}

	for idx := range c.Items {
		if c.Items[idx].ProductID == snapshot.ProductID {
			c.Items[idx].Quantity += quantity
			c.Items[idx].UpdatedAt = time.Now()
			c.recalculateTotals()
			c.UpdatedAt = time.Now()
			c.IncrementVersion()

			c.AddDomainEvent(NewCartItemAddedEvent(c, snapshot.ProductID, c.Items[idx].Quantity))
			return nil
		}
	}

	now := time.Now()
	c.Items = append(c.Items, CartItem{
		ID:           uuid.New(),
		CartID:       c.ID,
		ProductID:    snapshot.ProductID,
		CompanyID:    snapshot.CompanyID,
		Name:         snapshot.Name,
		ProductImage: snapshot.ProductImage,
		Quantity:     quantity,
		Price:        snapshot.Price,
		OfferPrice:   snapshot.OfferPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	c.recalculateTotals()
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewCartItemAddedEvent(c, snapshot.ProductID, quantity))

	return nil
}

// UpdateItemQuantity sets the quantity of an existing line to an absolute
// value. Removal is a distinct operation, so values below 1 are rejected.
func (c *Cart) UpdateItemQuantity(productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return shared.NewValidationError("Quantity must be at least 1")
	}

	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items[idx].Quantity = quantity
			c.Items[idx].UpdatedAt = time.Now()
			c.recalculateTotals()
			c.UpdatedAt = time.Now()
			c.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError(shared.CodeNotFound, "Cart item not found")
}

// RemoveItem removes the line for the given product. Removing a product that
// is not in the cart is a no-op, not an error.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.recalculateTotals()
			c.UpdatedAt = time.Now()
			c.IncrementVersion()

			c.AddDomainEvent(NewCartItemRemovedEvent(c, productID))
			return
		}
	}
}

// Clear empties the cart. The cart record itself is retained.
func (c *Cart) Clear() {
	if len(c.Items) == 0 {
		return
	}

	c.Items = []CartItem{}
	c.recalculateTotals()
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCartClearedEvent(c))
}

// FindItem returns the line for the given product, or nil when absent
func (c *Cart) FindItem(productID uuid.UUID) *CartItem {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			return &c.Items[idx]
		}
	}
	return nil
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// GetTotalAmountMoney returns the total amount as a Money value object
func (c *Cart) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(c.TotalAmount)
}

// recalculateTotals recomputes the derived totals with a single pass over
// the item list. Called after every structural mutation, before the
// aggregate is persisted.
func (c *Cart) recalculateTotals() {
	totalItems := 0
	totalAmount := decimal.Zero
	totalSavings := decimal.Zero

	for idx := range c.Items {
		totalItems += c.Items[idx].Quantity
		totalAmount = totalAmount.Add(c.Items[idx].Subtotal())
		totalSavings = totalSavings.Add(c.Items[idx].Savings())
	}

	c.TotalItems = totalItems
	c.TotalAmount = totalAmount
	c.TotalSavings = totalSavings
}
