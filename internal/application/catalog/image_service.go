package catalog

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// AllowedImageContentTypes is the whitelist for product image uploads.
// SVG is excluded: it can carry scripts and inline event handlers.
var AllowedImageContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ObjectStorageService defines the interface for object storage operations.
// The infrastructure layer implements it against S3-compatible backends.
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file.
	// Returns the upload URL and its expiration time.
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file.
	// Returns the download URL and its expiration time.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ImageServiceConfig holds configuration for the image service
type ImageServiceConfig struct {
	// UploadURLExpiry is the duration for which upload URLs are valid
	UploadURLExpiry time.Duration
	// DownloadURLExpiry is the duration for which download URLs are valid
	DownloadURLExpiry time.Duration
	// MaxImagesPerProduct caps the image list on a single product
	MaxImagesPerProduct int
}

// DefaultImageServiceConfig returns the default configuration
func DefaultImageServiceConfig() ImageServiceConfig {
	return ImageServiceConfig{
		UploadURLExpiry:     15 * time.Minute,
		DownloadURLExpiry:   1 * time.Hour,
		MaxImagesPerProduct: 10,
	}
}

// InitiateImageUploadRequest represents a request for a presigned upload URL
type InitiateImageUploadRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	FileName    string    `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string    `json:"content_type" binding:"required"`
}

// InitiateImageUploadResponse carries the presigned upload URL and the key
// the client must confirm after uploading
type InitiateImageUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ImageDownloadResponse carries a presigned download URL
type ImageDownloadResponse struct {
	StorageKey  string    `json:"storage_key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ImageService manages product image uploads: presigned upload URLs,
// attach-after-upload confirmation, and removal.
type ImageService struct {
	productRepo    catalog.ProductRepository
	storageService ObjectStorageService
	config         ImageServiceConfig
}

// NewImageService creates a new ImageService
func NewImageService(productRepo catalog.ProductRepository, storageService ObjectStorageService) *ImageService {
	return &ImageService{
		productRepo:    productRepo,
		storageService: storageService,
		config:         DefaultImageServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *ImageService) SetConfig(config ImageServiceConfig) {
	s.config = config
}

// InitiateUpload validates the request and returns a presigned upload URL.
// The image is not attached to the product until ConfirmUpload.
func (s *ImageService) InitiateUpload(ctx context.Context, userID uuid.UUID, req InitiateImageUploadRequest) (*InitiateImageUploadResponse, error) {
	product, err := s.findOwnedProduct(ctx, userID, req.ProductID)
	if err != nil {
		return nil, err
	}

	extension, allowed := AllowedImageContentTypes[strings.ToLower(req.ContentType)]
	if !allowed {
		return nil, shared.NewValidationError("Content type not allowed for product images")
	}

	if len(product.Images) >= s.config.MaxImagesPerProduct {
		return nil, shared.NewValidationError(
			fmt.Sprintf("Maximum %d images per product allowed", s.config.MaxImagesPerProduct))
	}

	storageKey := buildImageKey(product.ID, extension)
	uploadURL, expiresAt, err := s.storageService.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, shared.NewPersistenceError(err)
	}

	return &InitiateImageUploadResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmUpload attaches an uploaded image to the product. The object must
// exist in storage; confirming a key that was never uploaded is rejected.
func (s *ImageService) ConfirmUpload(ctx context.Context, userID, productID uuid.UUID, storageKey string) (*ProductResponse, error) {
	product, err := s.findOwnedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(storageKey, imageKeyPrefix(product.ID)) {
		return nil, shared.NewValidationError("Storage key does not belong to this product")
	}

	exists, err := s.storageService.ObjectExists(ctx, storageKey)
	if err != nil {
		return nil, shared.NewPersistenceError(err)
	}
	if !exists {
		return nil, shared.NewValidationError("No uploaded object found for this storage key")
	}

	for _, image := range product.Images {
		if image == storageKey {
			response := ToProductResponse(product)
			return &response, nil
		}
	}

	product.SetImages(append(product.Images, storageKey))
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetDownloadURL returns a presigned download URL for a stored image
func (s *ImageService) GetDownloadURL(ctx context.Context, storageKey string) (*ImageDownloadResponse, error) {
	exists, err := s.storageService.ObjectExists(ctx, storageKey)
	if err != nil {
		return nil, shared.NewPersistenceError(err)
	}
	if !exists {
		return nil, shared.NewDomainError(shared.CodeNotFound, "Image not found")
	}

	downloadURL, expiresAt, err := s.storageService.GenerateDownloadURL(ctx, storageKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, shared.NewPersistenceError(err)
	}

	return &ImageDownloadResponse{
		StorageKey:  storageKey,
		DownloadURL: downloadURL,
		ExpiresAt:   expiresAt,
	}, nil
}

// RemoveImage detaches an image from the product and deletes the object
func (s *ImageService) RemoveImage(ctx context.Context, userID, productID uuid.UUID, storageKey string) (*ProductResponse, error) {
	product, err := s.findOwnedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	images := make([]string, 0, len(product.Images))
	found := false
	for _, image := range product.Images {
		if image == storageKey {
			found = true
			continue
		}
		images = append(images, image)
	}
	if !found {
		return nil, shared.NewDomainError(shared.CodeNotFound, "Image not found on this product")
	}

	product.SetImages(images)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if err := s.storageService.DeleteObject(ctx, storageKey); err != nil {
		return nil, shared.NewPersistenceError(err)
	}

	response := ToProductResponse(product)
	return &response, nil
}

// findOwnedProduct loads a product and checks seller ownership
func (s *ImageService) findOwnedProduct(ctx context.Context, userID, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByIDForUser(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Product not found")
		}
		return nil, err
	}
	return product, nil
}

func imageKeyPrefix(productID uuid.UUID) string {
	return path.Join("products", productID.String()) + "/"
}

func buildImageKey(productID uuid.UUID, extension string) string {
	return imageKeyPrefix(productID) + uuid.NewString() + extension
}
