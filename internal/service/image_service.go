package service

import (
	"context"

	"github.com/obi/bookshelf-api/internal/domain"
	"github.com/obi/bookshelf-api/internal/imagehost"
	"go.uber.org/zap"
)

const maxImageSize = 5 * 1024 * 1024 // 5 MiB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ImageService validates cover uploads before any byte reaches the host.
type ImageService struct {
	host   imagehost.Client
	folder string
	logger *zap.Logger
}

func NewImageService(logger *zap.Logger, host imagehost.Client, folder string) *ImageService {
	return &ImageService{
		host:   host,
		folder: folder,
		logger: logger,
	}
}

func (s *ImageService) Upload(ctx context.Context, data []byte, contentType, filename string) (*imagehost.UploadResult, error) {
	if len(data) == 0 {
		return nil, domain.ErrImageEmpty
	}
	if !allowedImageTypes[contentType] {
		return nil, domain.ErrImageTypeNotAllowed
	}
	if len(data) > maxImageSize {
		return nil, domain.ErrImageTooLarge
	}

	result, err := s.host.Upload(ctx, imagehost.UploadInput{
		Data:        data,
		ContentType: contentType,
		Filename:    filename,
		Folder:      s.folder,
	})
	if err != nil {
		s.logger.Error("image upload failed", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}

	s.logger.Info("image uploaded",
		zap.String("publicId", result.PublicID),
		zap.Int64("bytes", result.Bytes))
	return result, nil
}
