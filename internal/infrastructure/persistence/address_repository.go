package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shopping"
	"gorm.io/gorm"
)

// GormAddressRepository implements AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds an address by its ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.DeliveryAddress, error) {
	var address shopping.DeliveryAddress
	if err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &address, nil
}

// FindByIDForUser finds an address by ID owned by the given user
func (r *GormAddressRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*shopping.DeliveryAddress, error) {
	var address shopping.DeliveryAddress
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &address, nil
}

// FindAllForUser finds all addresses owned by the given user, default first
func (r *GormAddressRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]shopping.DeliveryAddress, error) {
	var addresses []shopping.DeliveryAddress
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// FindDefaultForUser finds the user's default address
func (r *GormAddressRepository) FindDefaultForUser(ctx context.Context, userID uuid.UUID) (*shopping.DeliveryAddress, error) {
	var address shopping.DeliveryAddress
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &address, nil
}

// ClearDefault clears the default flag on all of the user's addresses
func (r *GormAddressRepository) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&shopping.DeliveryAddress{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, address *shopping.DeliveryAddress) error {
	return r.db.WithContext(ctx).Save(address).Error
}

// Delete deletes an address
func (r *GormAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&shopping.DeliveryAddress{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormAddressRepository implements AddressRepository
var _ shopping.AddressRepository = (*GormAddressRepository)(nil)
