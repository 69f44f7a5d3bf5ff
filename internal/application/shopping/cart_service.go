package shopping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/merchant"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shopping"
	"github.com/marketplace/backend/internal/infrastructure/telemetry"
)

// CartService maintains the per-user cart: item merge, quantity updates,
// removal, and derived-total recomputation. The catalog is the source of
// truth for price and approval at insertion time; every mutation runs under
// the user's lock and persists the whole aggregate in one write.
type CartService struct {
	cartRepo        shopping.CartRepository
	productRepo     catalog.ProductRepository
	companyRepo     merchant.CompanyRepository
	locker          shared.UserLocker
	eventPublisher  shared.EventPublisher
	businessMetrics *telemetry.BusinessMetrics
}

// NewCartService creates a new CartService
func NewCartService(
	cartRepo shopping.CartRepository,
	productRepo catalog.ProductRepository,
	companyRepo merchant.CompanyRepository,
	locker shared.UserLocker,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		companyRepo: companyRepo,
		locker:      locker,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CartService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetBusinessMetrics sets the business metrics collector
func (s *CartService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// GetCart returns the user's cart, or an empty projection when no cart
// record exists yet. Reading never creates a record.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return EmptyCartResponse(userID), nil
		}
		return nil, err
	}

	return s.hydrate(ctx, cart), nil
}

// AddItem adds a product to the user's cart, lazily creating the cart on
// first use. The product's approval flag is re-checked here, at add time,
// because it may have changed since the shopper viewed the listing.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddCartItemRequest) (*CartResponse, error) {
	quantity := req.QuantityOrDefault()

	release, err := s.locker.Acquire(ctx, userLockKey(userID))
	if err != nil {
		return nil, err
	}
	defer release()

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Product not found")
		}
		return nil, err
	}
	if !product.IsPurchasable() {
		return nil, shared.NewUnavailableError("Product is not available for purchase")
	}

	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		cart = shopping.NewCart(userID)
	}

	snapshot := shopping.ItemSnapshot{
		ProductID:    product.ID,
		CompanyID:    product.CompanyID,
		Name:         product.Name,
		ProductImage: firstImage(product.Images),
		Price:        product.Price,
		OfferPrice:   product.OfferPrice,
	}
	if err := cart.AddItem(snapshot, quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, cart)

	if s.businessMetrics != nil {
		s.businessMetrics.RecordCartAddition(ctx, string(product.Category), quantity, snapshot.OfferPrice)
	}

	return s.hydrate(ctx, cart), nil
}

// UpdateItemQuantity sets an item's quantity to an absolute value
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartResponse, error) {
	release, err := s.locker.Acquire(ctx, userLockKey(userID))
	if err != nil {
		return nil, err
	}
	defer release()

	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := cart.UpdateItemQuantity(productID, quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, cart)

	return s.hydrate(ctx, cart), nil
}

// RemoveItem removes a product from the cart. A product that is not in the
// cart is a no-op; only a missing cart is an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartResponse, error) {
	release, err := s.locker.Acquire(ctx, userLockKey(userID))
	if err != nil {
		return nil, err
	}
	defer release()

	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, cart)

	return s.hydrate(ctx, cart), nil
}

// ClearCart empties the user's cart. Clearing a user without a cart record
// is a no-op returning the empty projection.
func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	release, err := s.locker.Acquire(ctx, userLockKey(userID))
	if err != nil {
		return nil, err
	}
	defer release()

	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return EmptyCartResponse(userID), nil
		}
		return nil, err
	}

	cart.Clear()

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, cart)

	return s.hydrate(ctx, cart), nil
}

// findCart loads the user's cart, translating a missing record into the
// spec'd not-found error
func (s *CartService) findCart(ctx context.Context, userID uuid.UUID) (*shopping.Cart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Cart not found")
		}
		return nil, err
	}
	return cart, nil
}

// hydrate maps a cart to its read projection, joining current company
// display fields onto the snapshot lines. The join is read convenience only;
// it never feeds back into the mutation path.
func (s *CartService) hydrate(ctx context.Context, cart *shopping.Cart) *CartResponse {
	companies := make(map[uuid.UUID]*merchant.Company)
	for idx := range cart.Items {
		companyID := cart.Items[idx].CompanyID
		if _, seen := companies[companyID]; seen {
			continue
		}
		company, err := s.companyRepo.FindByID(ctx, companyID)
		if err != nil {
			// display-only join; a missing company leaves the fields blank
			companies[companyID] = nil
			continue
		}
		companies[companyID] = company
	}

	items := make([]CartItemResponse, 0, len(cart.Items))
	for idx := range cart.Items {
		item := &cart.Items[idx]
		resp := CartItemResponse{
			ProductID:    item.ProductID,
			CompanyID:    item.CompanyID,
			Name:         item.Name,
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
			Price:        item.Price,
			OfferPrice:   item.OfferPrice,
			Subtotal:     item.Subtotal(),
		}
		if company := companies[item.CompanyID]; company != nil {
			resp.CompanyName = company.Name
			resp.CompanyLogo = company.Logo
		}
		items = append(items, resp)
	}

	id := cart.ID
	updatedAt := cart.UpdatedAt
	return &CartResponse{
		ID:           &id,
		UserID:       cart.UserID,
		Items:        items,
		TotalItems:   cart.TotalItems,
		TotalAmount:  cart.TotalAmount,
		TotalSavings: cart.TotalSavings,
		UpdatedAt:    &updatedAt,
	}
}

// publishEvents publishes and clears the cart's pending domain events
func (s *CartService) publishEvents(ctx context.Context, cart *shopping.Cart) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range cart.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	cart.ClearDomainEvents()
}

func userLockKey(userID uuid.UUID) string {
	return "user:" + userID.String()
}

func firstImage(images []string) string {
	if len(images) == 0 {
		return ""
	}
	return images[0]
}
