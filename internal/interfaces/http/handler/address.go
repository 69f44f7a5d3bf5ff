package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	shoppingapp "github.com/marketplace/backend/internal/application/shopping"
)

// AddressHandler handles delivery address API endpoints
type AddressHandler struct {
	BaseHandler
	addressService *shoppingapp.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(addressService *shoppingapp.AddressService) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
	}
}

// List godoc
// @Summary      List delivery addresses
// @Description  Returns all delivery addresses of the current user.
// @Tags         addresses
// @Produce      json
// @Success      200 {object} dto.Response{data=[]shoppingapp.AddressResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shopping/addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addresses, err := h.addressService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, addresses)
}

// Get godoc
// @Summary      Get a delivery address
// @Tags         addresses
// @Produce      json
// @Param        id path string true "Address ID" format(uuid)
// @Success      200 {object} dto.Response{data=shoppingapp.AddressResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shopping/addresses/{id} [get]
func (h *AddressHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	address, err := h.addressService.Get(c.Request.Context(), userID, addressID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, address)
}

// Create godoc
// @Summary      Create a delivery address
// @Description  Creates a new address. The first address is not made the default automatically; pass is_default to set it.
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        request body shoppingapp.CreateAddressRequest true "Address to create"
// @Success      201 {object} dto.Response{data=shoppingapp.AddressResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shopping/addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req shoppingapp.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	address, err := h.addressService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, address)
}

// Update godoc
// @Summary      Update a delivery address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        id path string true "Address ID" format(uuid)
// @Param        request body shoppingapp.UpdateAddressRequest true "Updated address"
// @Success      200 {object} dto.Response{data=shoppingapp.AddressResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shopping/addresses/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	var req shoppingapp.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	address, err := h.addressService.Update(c.Request.Context(), userID, addressID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, address)
}

// Delete godoc
// @Summary      Delete a delivery address
// @Description  Deletes the address. When the default address is deleted another address is promoted to default, if one exists.
// @Tags         addresses
// @Produce      json
// @Param        id path string true "Address ID" format(uuid)
// @Success      204 "No Content"
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shopping/addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), userID, addressID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// SetDefault godoc
// @Summary      Set the default delivery address
// @Description  Marks the address as the user's default. Any previous default is cleared; at most one address is the default.
// @Tags         addresses
// @Produce      json
// @Param        id path string true "Address ID" format(uuid)
// @Success      200 {object} dto.Response{data=shoppingapp.AddressResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shopping/addresses/{id}/default [put]
func (h *AddressHandler) SetDefault(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	address, err := h.addressService.SetDefault(c.Request.Context(), userID, addressID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, address)
}
