// Package storage keeps event banner images on local disk or in an S3-compatible bucket.
package storage

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventregistration/internal/domain"
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// sniffed is a validated banner ready to be written.
type sniffed struct {
	key         string
	contentType string
	body        io.Reader
}

// inspect checks size and sniffed content type and derives a unique object key.
// The declared content type is ignored; only the leading bytes decide.
func inspect(upload *domain.BannerUpload) (*sniffed, error) {
	if upload == nil || upload.Body == nil {
		return nil, domain.NewValidationError([]string{"banner is empty"})
	}
	if upload.Size > domain.MaxBannerSize {
		return nil, domain.NewValidationError([]string{fmt.Sprintf("banner exceeds %d bytes", domain.MaxBannerSize)})
	}
	br := bufio.NewReaderSize(upload.Body, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("read banner: %w", err)
	}
	if len(head) == 0 {
		return nil, domain.NewValidationError([]string{"banner is empty"})
	}
	ct := http.DetectContentType(head)
	ext, ok := extensions[ct]
	if !ok {
		return nil, domain.NewValidationError([]string{"banner must be a jpeg, png or webp image"})
	}
	return &sniffed{
		key:         objectKey(upload.Filename, ext),
		contentType: ct,
		body:        &countingReader{r: br, limit: domain.MaxBannerSize},
	}, nil
}

func objectKey(filename, ext string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.ToLower(strings.Join(strings.Fields(base), "-"))
	var b strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" || name == "." {
		name = "banner"
	}
	if len(name) > 40 {
		name = name[:40]
	}
	return fmt.Sprintf("banners/%s/%s-%s%s", time.Now().UTC().Format("2006/01"), name, uuid.NewString()[:8], ext)
}

// countingReader fails once more than limit bytes have been read.
type countingReader struct {
	r     io.Reader
	n     int64
	limit int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if c.n > c.limit {
		return n, domain.NewValidationError([]string{fmt.Sprintf("banner exceeds %d bytes", c.limit)})
	}
	return n, err
}
