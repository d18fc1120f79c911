package imagehost

import "context"

// UploadInput carries one image to be stored by the host.
type UploadInput struct {
	Data        []byte
	ContentType string
	Filename    string
	Folder      string
}

// UploadResult is the host's record of a stored image.
type UploadResult struct {
	URL      string `json:"secure_url"`
	PublicID string `json:"public_id"`
	Format   string `json:"format"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Bytes    int64  `json:"bytes"`
}

// Client is the outbound image-hosting capability: store bytes, get back a
// durable URL, and later destroy by public ID.
type Client interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}
