package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/obi/bookshelf-api/internal/domain"
	"github.com/obi/bookshelf-api/internal/imagehost"
	"github.com/obi/bookshelf-api/internal/service"
	"github.com/obi/bookshelf-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fakeUploadInput() imagehost.UploadInput {
	return imagehost.UploadInput{
		Data:        []byte("jpegdata"),
		ContentType: "image/jpeg",
		Filename:    "cover.jpg",
		Folder:      "test-covers",
	}
}

func TestImageService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		data        []byte
		contentType string
		wantErr     error
	}{
		{
			name:        "valid jpeg",
			data:        []byte("jpegdata"),
			contentType: "image/jpeg",
		},
		{
			name:        "valid webp",
			data:        []byte("webpdata"),
			contentType: "image/webp",
		},
		{
			name:        "empty buffer",
			data:        nil,
			contentType: "image/png",
			wantErr:     domain.ErrImageEmpty,
		},
		{
			name:        "disallowed mime type",
			data:        []byte("plaintext"),
			contentType: "text/plain",
			wantErr:     domain.ErrImageTypeNotAllowed,
		},
		{
			name:        "oversized payload",
			data:        bytes.Repeat([]byte("a"), 6*1024*1024),
			contentType: "image/jpeg",
			wantErr:     domain.ErrImageTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := testutil.NewFakeImageHost()
			svc := service.NewImageService(zap.NewNop(), host, "test-covers")

			result, err := svc.Upload(ctx, tt.data, tt.contentType, "cover.img")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				// Validation failures never reach the host.
				assert.Equal(t, 0, host.UploadCount())
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, result.URL)
			assert.NotEmpty(t, result.PublicID)
			assert.Equal(t, 1, host.UploadCount())
		})
	}
}

func TestImageService_UploadUsesConfiguredFolder(t *testing.T) {
	host := testutil.NewFakeImageHost()
	svc := service.NewImageService(zap.NewNop(), host, "book-covers")

	result, err := svc.Upload(context.Background(), []byte("png"), "image/png", "c.png")
	require.NoError(t, err)
	assert.Contains(t, result.PublicID, "book-covers/")
}
