package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shopping"
	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM. Carts are read
// and written as whole aggregates: finds preload the item list and Save
// replaces it inside a transaction, so totals and items land in one write.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart by its ID, items included
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.Cart, error) {
	var cart shopping.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&cart, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// FindByUserID finds the cart owned by the given user, items included
func (r *GormCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*shopping.Cart, error) {
	var cart shopping.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// Save persists the whole cart aggregate in a single transaction. The stored
// item list is replaced with the aggregate's current one so removed lines do
// not linger.
func (r *GormCartRepository) Save(ctx context.Context, cart *shopping.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(cart).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).
			Delete(&shopping.CartItem{}).Error; err != nil {
			return err
		}

		if len(cart.Items) == 0 {
			return nil
		}

		for i := range cart.Items {
			cart.Items[i].CartID = cart.ID
		}
		return tx.Create(&cart.Items).Error
	})
}

// Ensure GormCartRepository implements CartRepository
var _ shopping.CartRepository = (*GormCartRepository)(nil)
