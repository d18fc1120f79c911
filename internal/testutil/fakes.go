package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/obi/bookshelf-api/internal/imagehost"
)

// FakeImageHost implements imagehost.Client in memory and records every
// call, so tests can assert that validation short-circuits before any
// upload happens.
type FakeImageHost struct {
	mu        sync.Mutex
	uploads   int
	destroys  []string
	UploadErr error
}

func NewFakeImageHost() *FakeImageHost {
	return &FakeImageHost{}
}

func (f *FakeImageHost) Upload(ctx context.Context, input imagehost.UploadInput) (*imagehost.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.UploadErr != nil {
		return nil, f.UploadErr
	}

	f.uploads++
	publicID := fmt.Sprintf("%s/fake-%d", input.Folder, f.uploads)
	return &imagehost.UploadResult{
		URL:      fmt.Sprintf("https://images.example.com/%s.jpg", publicID),
		PublicID: publicID,
		Format:   "jpg",
		Width:    500,
		Height:   500,
		Bytes:    int64(len(input.Data)),
	}, nil
}

func (f *FakeImageHost) Destroy(ctx context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroys = append(f.destroys, publicID)
	return nil
}

// UploadCount returns how many uploads reached the host.
func (f *FakeImageHost) UploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploads
}

// Destroyed returns the public IDs deleted at the host, in order.
func (f *FakeImageHost) Destroyed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.destroys...)
}
