package datastore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"github.com/pkg/errors"
	"io"
	"oamanager/providers"
)

// ContentHash reads a stored signature image and returns its hex SHA-256.
// The digest is always computed from the stored bytes, never taken from input.
func ContentHash(ctx context.Context, blobs providers.BlobProvider, key string) (string, error) {
	_, body, err := blobs.Get(ctx, key)
	if errors.Is(err, providers.ErrBlobNotFound) {
		return "", Invalid("signature file %q is not in storage", key)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to open signature file %q", key)
	}
	defer body.Close()

	h := sha256.New()
	if _, err := io.Copy(h, body); err != nil {
		return "", errors.Wrapf(err, "failed to read signature file %q", key)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
