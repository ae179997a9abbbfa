package domain

import (
	"context"
	"io"
)

// MaxBannerSize is the largest banner image accepted, in bytes.
const MaxBannerSize = 2 << 20

// BannerUpload is an image submitted with an event form.
type BannerUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// BannerStore persists event banner images.
type BannerStore interface {
	// Save stores the banner and returns its storage key.
	Save(ctx context.Context, upload *BannerUpload) (string, error)
	Delete(ctx context.Context, key string) error
	// URL returns the public URL of key, or "" when key is empty.
	URL(key string) string
}
