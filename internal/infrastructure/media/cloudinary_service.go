package media

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// CloudinaryService implements domain.MediaUploader. The object store is the
// only home for binaries; the database keeps URLs and identifiers.
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryService{cld: cld}, nil
}

var _ domain.MediaUploader = (*CloudinaryService)(nil)

// Upload sends the bytes to Cloudinary and returns the stable URL and the
// public identifier.
func (s *CloudinaryService) Upload(ctx context.Context, data []byte, folder string) (string, string, error) {
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     uuid.NewString(),
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	return result.SecureURL, result.PublicID, nil
}
