// Package blobprovider stores signature images behind providers.BlobProvider.
package blobprovider

import (
	"context"
	"fmt"
	"oamanager/providers"
	"path/filepath"
	"strings"
)

const (
	DriverFilesystem = "fs"
	DriverS3         = "s3"
	DriverMemory     = "memory"
)

// NewBlobProvider picks the driver named by the config.
func NewBlobProvider(ctx context.Context, cfg providers.ConfigProvider) (providers.BlobProvider, error) {
	switch strings.ToLower(cfg.GetBlobDriver()) {
	case "", DriverFilesystem:
		return NewFilesystem(cfg.GetSignatureDir())
	case DriverS3:
		return NewS3(ctx, cfg.GetS3Config())
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.GetBlobDriver())
	}
}

// sanitizeKey keeps keys flat and inside the store root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.ToSlash(filepath.Clean(key)), nil
}
