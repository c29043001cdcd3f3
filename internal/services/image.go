package services

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/devfolio/devfolio-api/internal/models"
)

// MaxImageSize is the upload limit for entity images.
const MaxImageSize = 2 * 1024 * 1024

var (
	// ErrImageRequired is returned when no file was sent or the file is not an image.
	ErrImageRequired = errors.New("image file is required and must be an image")

	// ErrImageTooLarge is returned when the image exceeds MaxImageSize.
	ErrImageTooLarge = errors.New("image file too large")
)

// MediaUploader pushes a local file to the external media host and returns
// its durable URL.
type MediaUploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

// validateImage enforces the image constraints. It runs before any upload is
// attempted so an invalid file never reaches the media host.
func validateImage(image *models.ImageUpload) error {
	if image == nil || !strings.HasPrefix(image.ContentType, "image/") {
		return ErrImageRequired
	}
	if image.Size > MaxImageSize {
		return ErrImageTooLarge
	}
	return nil
}

// removeTemp deletes the spooled upload. Deferred by every create/update path
// so temp files are reclaimed on success and failure alike.
func removeTemp(image *models.ImageUpload) {
	if image != nil && image.TempPath != "" {
		os.Remove(image.TempPath)
	}
}
