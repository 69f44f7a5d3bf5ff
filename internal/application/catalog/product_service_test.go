package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/merchant"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
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

// MockCompanyRepository is a mock implementation of merchant.CompanyRepository
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

// Test helper functions
func newTestUserID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newTestCompany(t *testing.T, userID uuid.UUID) *merchant.Company {
	t.Helper()
	company, err := merchant.NewCompany(userID, "Spice Traders", merchant.ContactInfo{
		Email: "hello@spicetraders.example",
		Phone: "+1-555-0100",
	})
	assert.NoError(t, err)
	company.ClearDomainEvents()
	return company
}

func newSellerProduct(t *testing.T, userID, companyID uuid.UUID) *catalog.Product {
	t.Helper()
	foodType := catalog.FoodTypeVeg
	product, err := catalog.NewProduct(
		userID,
		companyID,
		"Turmeric Powder",
		decimal.NewFromInt(100),
		decimal.NewFromInt(80),
		25,
		catalog.ProductCategoryPowder,
		&foodType,
	)
	assert.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func testCreateProductRequest() CreateProductRequest {
	foodType := "veg"
	return CreateProductRequest{
		Name:             "Turmeric Powder",
		ShortDescription: "Stone-ground turmeric",
		Price:            decimal.NewFromInt(100),
		OfferPrice:       decimal.NewFromInt(80),
		Quantity:         25,
		Category:         "powder",
		FoodType:         &foodType,
	}
}

func TestProductService_Create_Success(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCompanyRepo := new(MockCompanyRepository)
	service := NewProductService(mockProductRepo, mockCompanyRepo)

	ctx := context.Background()
	userID := newTestUserID()
	company := newTestCompany(t, userID)

	mockCompanyRepo.On("FindByUserID", ctx, userID).Return(company, nil)
	mockProductRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	result, err := service.Create(ctx, userID, testCreateProductRequest())

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "Turmeric Powder", result.Name)
	assert.Equal(t, company.ID, result.CompanyID)
	assert.True(t, result.Price.Equal(decimal.NewFromInt(100)))
	assert.True(t, result.OfferPrice.Equal(decimal.NewFromInt(80)))
	assert.True(t, result.Savings.Equal(decimal.NewFromInt(20)))
	// new listings always start unapproved
	assert.False(t, result.IsApproved)
	mockProductRepo.AssertExpectations(t)
	mockCompanyRepo.AssertExpectations(t)
}

func TestProductService_Create_NoCompany(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCompanyRepo := new(MockCompanyRepository)
	service := NewProductService(mockProductRepo, mockCompanyRepo)

	ctx := context.Background()
	userID := newTestUserID()

	mockCompanyRepo.On("FindByUserID", ctx, userID).Return(nil, shared.ErrNotFound)

	result, err := service.Create(ctx, userID, testCreateProductRequest())

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeNotFound, domainErr.Code)
	mockProductRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Create_MissingFoodType(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCompanyRepo := new(MockCompanyRepository)
	service := NewProductService(mockProductRepo, mockCompanyRepo)

	ctx := context.Background()
	userID := newTestUserID()
	company := newTestCompany(t, userID)

	mockCompanyRepo.On("FindByUserID", ctx, userID).Return(company, nil)

	req := testCreateProductRequest()
	req.FoodType = nil
	result, err := service.Create(ctx, userID, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeValidation, domainErr.Code)
	mockProductRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Get_NotFound(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCompanyRepo := new(MockCompanyRepository)
	service := NewProductService(mockProductRepo, mockCompanyRepo)

	ctx := context.Background()
	productID := uuid.New()

	mockProductRepo.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound)

	result, err := service.Get(ctx, productID)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeNotFound, domainErr.Code)
}

func TestProductService_ListApproved(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCompanyRepo := new(MockCompanyRepository)
	service := NewProductService(mockProductRepo, mockCompanyRepo)

	ctx := context.Background()
	userID := newTestUserID()
	company := newTestCompany(t, userID)
	product := newSellerProduct(t, userID, company.ID)
	product.SetApproval(true)
	product.ClearDomainEvents()

	approved := true
	mockProductRepo.On("FindApproved", ctx, mock.AnythingOfType("shared.Filter")).Return([]catalog.Product{*product}, nil)
	mockProductRepo.On("CountByApproval", ctx, &approved).Return(int64(1), nil)

	result, err := service.ListApproved(ctx, ProductListFilter{Page: 1, PageSize: 20})

	assert.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Total)
	assert.True(t, result.Items[0].IsApproved)
	mockProductRepo.AssertExpectations(t)
}

func TestProductService_ListByCompany_FiltersUnapproved(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCompanyRepo := new(MockCompanyRepository)
	service := NewProductService(mockProductRepo, mockCompanyRepo)

	ctx := context.Background()
	userID := newTestUserID()
	company := newTestCompany(t, userID)
	visible := newSellerProduct(t, userID, company.ID)
	visible.SetApproval(true)
	visible.ClearDomainEvents()
	hidden := newSellerProduct(t, userID, company.ID)

	mockCompanyRepo.On("FindByID", ctx, company.ID).Return(company, nil)
	mockProductRepo.On("FindByCompany", ctx, company.ID, mock.AnythingOfType("shared.Filter")).
		Return([]catalog.Product{*visible, *hidden}, nil)

	result, err := service.ListByCompany(ctx, company.ID, ProductListFilter{})

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, visible.ID, result[0].ID)
	mockProductRepo.AssertExpectations(t)
}

func TestProductService_Update_Success(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCompanyRepo := new(MockCompanyRepository)
	service := NewProductService(mockProductRepo, mockCompanyRepo)

	ctx := context.Background()
	userID := newTestUserID()
	company := newTestCompany(t, userID)
	product := newSellerProduct(t, userID, company.ID)

	mockProductRepo.On("FindByIDForUser", ctx, userID, product.ID).Return(product, nil)
	mockProductRepo.On("Save", ctx, product).Return(nil)

	name := "Organic Turmeric Powder"
	offerPrice := decimal.NewFromInt(75)
	result, err := service.Update(ctx, userID, product.ID, UpdateProductRequest{
		Name:       &name,
		OfferPrice: &offerPrice,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Organic Turmeric Powder", result.Name)
	assert.True(t, result.OfferPrice.Equal(decimal.NewFromInt(75)))
	assert.True(t, result.Savings.Equal(decimal.NewFromInt(25)))
	mockProductRepo.AssertExpectations(t)
}

func TestProductService_Update_NotOwned(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCompanyRepo := new(MockCompanyRepository)
	service := NewProductService(mockProductRepo, mockCompanyRepo)

	ctx := context.Background()
	userID := newTestUserID()
	productID := uuid.New()

	mockProductRepo.On("FindByIDForUser", ctx, userID, productID).Return(nil, shared.ErrNotFound)

	result, err := service.Update(ctx, userID, productID, UpdateProductRequest{})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeNotFound, domainErr.Code)
	mockProductRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Delete_Success(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCompanyRepo := new(MockCompanyRepository)
	service := NewProductService(mockProductRepo, mockCompanyRepo)

	ctx := context.Background()
	userID := newTestUserID()
	company := newTestCompany(t, userID)
	product := newSellerProduct(t, userID, company.ID)

	mockProductRepo.On("FindByIDForUser", ctx, userID, product.ID).Return(product, nil)
	mockProductRepo.On("Delete", ctx, product.ID).Return(nil)

	err := service.Delete(ctx, userID, product.ID)

	assert.NoError(t, err)
	mockProductRepo.AssertExpectations(t)
}
