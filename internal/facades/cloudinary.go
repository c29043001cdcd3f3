package facades

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// CloudinaryFacade implements media uploads against the Cloudinary API.
type CloudinaryFacade struct {
	cld    *cloudinary.Cloudinary
	folder string
	log    *zap.SugaredLogger
}

// NewCloudinaryFacade creates a new facade from account credentials.
func NewCloudinaryFacade(cloudName, apiKey, apiSecret, folder string, log *zap.SugaredLogger) (*CloudinaryFacade, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryFacade{cld: cld, folder: folder, log: log}, nil
}

// Upload pushes a local file to Cloudinary and returns its durable URL.
func (f *CloudinaryFacade) Upload(ctx context.Context, path string) (string, error) {
	resp, err := f.cld.Upload.Upload(ctx, path, uploader.UploadParams{
		Folder:      f.folder,
		UseFilename: api.Bool(true),
	})
	if err != nil {
		f.log.Errorw("cloudinary upload failed", "path", path, "error", err)
		return "", err
	}

	f.log.Infow("image uploaded", "public_id", resp.PublicID, "url", resp.SecureURL)
	return resp.SecureURL, nil
}
