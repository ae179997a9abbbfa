package storage

import (
	"fmt"
	"log/slog"

	"eventregistration/internal/domain"
)

// Config selects and configures a banner store.
type Config struct {
	Provider      string
	UploadDir     string
	PublicBaseURL string
	S3            S3Config
}

// New returns the store for cfg.Provider. "s3" falls back to local disk when the
// bucket is not fully configured, matching development setups without credentials.
func New(cfg Config, logger *slog.Logger) (domain.BannerStore, error) {
	if cfg.Provider == "s3" {
		s, err := NewS3Store(cfg.S3)
		if err == nil {
			logger.Info("banner storage: s3", "bucket", cfg.S3.Bucket)
			return s, nil
		}
		logger.Warn("banner storage: s3 unavailable, using local disk", "error", err)
	}
	if cfg.UploadDir == "" {
		return nil, fmt.Errorf("upload directory not configured")
	}
	s, err := NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL+"/uploads")
	if err != nil {
		return nil, err
	}
	logger.Info("banner storage: local", "dir", cfg.UploadDir)
	return s, nil
}
