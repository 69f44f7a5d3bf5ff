package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/marketplace/backend/internal/application/catalog"
)

// ImageHandler handles product image upload endpoints for merchants
type ImageHandler struct {
	BaseHandler
	imageService *catalogapp.ImageService
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(imageService *catalogapp.ImageService) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
	}
}

// ConfirmImageUploadRequest represents the confirmation sent after the
// client has uploaded the file to the presigned URL
type ConfirmImageUploadRequest struct {
	StorageKey string `json:"storage_key" binding:"required,min=1,max=500"`
}

// RemoveImageRequest represents a request to detach an image from a product
type RemoveImageRequest struct {
	StorageKey string `json:"storage_key" binding:"required,min=1,max=500"`
}

// InitiateUpload godoc
// @Summary      Request a presigned image upload URL
// @Description  Validates the file type and returns a presigned URL. The image is attached to the product only after confirmation.
// @Tags         merchant
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.InitiateImageUploadRequest true "Upload request"
// @Success      200 {object} dto.Response{data=catalogapp.InitiateImageUploadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /merchant/images/initiate [post]
func (h *ImageHandler) InitiateUpload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.InitiateImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.imageService.InitiateUpload(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ConfirmUpload godoc
// @Summary      Attach an uploaded image to a product
// @Description  Verifies the object exists in storage and appends it to the product's image list.
// @Tags         merchant
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body ConfirmImageUploadRequest true "Storage key to confirm"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /merchant/products/{id}/images [post]
func (h *ImageHandler) ConfirmUpload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req ConfirmImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.imageService.ConfirmUpload(c.Request.Context(), userID, productID, req.StorageKey)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// RemoveImage godoc
// @Summary      Remove an image from a product
// @Description  Detaches the image from the product and deletes the stored object.
// @Tags         merchant
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body RemoveImageRequest true "Storage key to remove"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /merchant/products/{id}/images [delete]
func (h *ImageHandler) RemoveImage(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req RemoveImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.imageService.RemoveImage(c.Request.Context(), userID, productID, req.StorageKey)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// GetDownloadURL godoc
// @Summary      Get a presigned image download URL
// @Tags         products
// @Produce      json
// @Param        key query string true "Storage key"
// @Success      200 {object} dto.Response{data=catalogapp.ImageDownloadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/images/download [get]
func (h *ImageHandler) GetDownloadURL(c *gin.Context) {
	storageKey := c.Query("key")
	if storageKey == "" {
		h.BadRequest(c, "Missing storage key")
		return
	}

	result, err := h.imageService.GetDownloadURL(c.Request.Context(), storageKey)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
