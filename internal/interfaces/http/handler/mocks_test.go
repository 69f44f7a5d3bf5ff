package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/merchant"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shopping"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindApproved(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByApproval(ctx context.Context, approved *bool, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, approved, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByApproval(ctx context.Context, approved *bool) (int64, error) {
	args := m.Called(ctx, approved)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCompanyRepository implements merchant.CompanyRepository for testing
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*merchant.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*merchant.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*merchant.Company, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*merchant.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]merchant.Company, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]merchant.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByApproval(ctx context.Context, approved *bool, filter shared.Filter) ([]merchant.Company, error) {
	args := m.Called(ctx, approved, filter)
	return args.Get(0).([]merchant.Company), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *merchant.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepository) CountByApproval(ctx context.Context, approved *bool) (int64, error) {
	args := m.Called(ctx, approved)
	return args.Get(0).(int64), args.Error(1)
}

// MockCartRepository implements shopping.CartRepository for testing
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.Cart), args.Error(1)
}

func (m *MockCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*shopping.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, cart *shopping.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

// MockAddressRepository implements shopping.AddressRepository for testing
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.DeliveryAddress, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.DeliveryAddress), args.Error(1)
}

func (m *MockAddressRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*shopping.DeliveryAddress, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.DeliveryAddress), args.Error(1)
}

func (m *MockAddressRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]shopping.DeliveryAddress, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]shopping.DeliveryAddress), args.Error(1)
}

func (m *MockAddressRepository) FindDefaultForUser(ctx context.Context, userID uuid.UUID) (*shopping.DeliveryAddress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.DeliveryAddress), args.Error(1)
}

func (m *MockAddressRepository) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAddressRepository) Save(ctx context.Context, address *shopping.DeliveryAddress) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// noopLocker satisfies shared.UserLocker without any real locking
type noopLocker struct{}

func (noopLocker) Acquire(_ context.Context, _ string) (func(), error) {
	return func() {}, nil
}
