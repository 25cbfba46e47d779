package services

import (
	"context"
	"fmt"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// MediaServiceImpl implements domain.MediaService
type MediaServiceImpl struct {
	uploader  domain.MediaUploader
	mediaRepo domain.MediaRepository
}

// NewMediaService creates a new media service
func NewMediaService(uploader domain.MediaUploader, mediaRepo domain.MediaRepository) domain.MediaService {
	return &MediaServiceImpl{uploader: uploader, mediaRepo: mediaRepo}
}

// Upload implements domain.MediaService. The object store call is awaited;
// the document is only recorded once a stable URL exists.
func (s *MediaServiceImpl) Upload(ctx context.Context, data []byte, filename string, size int64) (*domain.Media, error) {
	url, publicID, err := s.uploader.Upload(ctx, data, "media")
	if err != nil {
		return nil, fmt.Errorf("failed to upload media: %w", err)
	}

	media := &domain.Media{
		URL:          url,
		CloudinaryID: publicID,
		Filename:     filename,
		Size:         size,
	}
	if err := s.mediaRepo.Create(ctx, media); err != nil {
		return nil, fmt.Errorf("failed to record media: %w", err)
	}
	return media, nil
}
