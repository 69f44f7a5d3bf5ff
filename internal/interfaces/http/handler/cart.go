package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	shoppingapp "github.com/marketplace/backend/internal/application/shopping"
)

// CartHandler handles shopping cart API endpoints
type CartHandler struct {
	BaseHandler
	cartService *shoppingapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *shoppingapp.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// GetCart godoc
// @Summary      Get the current user's cart
// @Description  Returns the cart with all items and computed totals. Users without a cart get an empty projection; no cart record is created.
// @Tags         cart
// @Produce      json
// @Success      200 {object} dto.Response{data=shoppingapp.CartResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shopping/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// AddItem godoc
// @Summary      Add a product to the cart
// @Description  Adds the product with the given quantity. Adding a product already in the cart increases its quantity; the price snapshot is kept.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body shoppingapp.AddCartItemRequest true "Item to add"
// @Success      200 {object} dto.Response{data=shoppingapp.CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shopping/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req shoppingapp.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// UpdateItemQuantity godoc
// @Summary      Set the quantity of a cart item
// @Description  Replaces the item's quantity. The quantity must be at least 1; use DELETE to remove an item.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        productId path string true "Product ID" format(uuid)
// @Param        request body shoppingapp.UpdateCartItemRequest true "New quantity"
// @Success      200 {object} dto.Response{data=shoppingapp.CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shopping/cart/items/{productId} [put]
func (h *CartHandler) UpdateItemQuantity(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req shoppingapp.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.UpdateItemQuantity(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// RemoveItem godoc
// @Summary      Remove a product from the cart
// @Description  Removes the item if present. Removing a product that is not in the cart succeeds and returns the unchanged cart.
// @Tags         cart
// @Produce      json
// @Param        productId path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=shoppingapp.CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shopping/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// ClearCart godoc
// @Summary      Clear the cart
// @Description  Removes all items from the user's cart.
// @Tags         cart
// @Produce      json
// @Success      200 {object} dto.Response{data=shoppingapp.CartResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shopping/cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.cartService.ClearCart(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}
