package blobprovider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"github.com/gabriel-vasile/mimetype"
	"io"
	"oamanager/providers"
	"os"
	"path/filepath"
	"time"
)

// Filesystem keeps each blob as a plain file under root.
type Filesystem struct {
	root string
}

func NewFilesystem(root string) (*Filesystem, error) {
	if root == "" {
		root = "./storage"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob root %s: %w", root, err)
	}
	return &Filesystem{root: root}, nil
}

func (f *Filesystem) Driver() string { return DriverFilesystem }

func (f *Filesystem) pathFor(key string) (string, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(f.root, k), nil
}

func (f *Filesystem) Put(ctx context.Context, key string, r io.Reader, contentType string) (providers.BlobInfo, error) {
	path, err := f.pathFor(key)
	if err != nil {
		return providers.BlobInfo{}, err
	}
	if _, err := os.Stat(path); err == nil {
		return providers.BlobInfo{}, fmt.Errorf("blob %s already exists", key)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return providers.BlobInfo{}, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return providers.BlobInfo{}, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	h := sha256.New()
	size, err := io.Copy(io.MultiWriter(tmp, h), r)
	if err != nil {
		_ = tmp.Close()
		return providers.BlobInfo{}, err
	}
	if err := tmp.Close(); err != nil {
		return providers.BlobInfo{}, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return providers.BlobInfo{}, err
	}

	return providers.BlobInfo{
		Key:          key,
		Size:         size,
		ContentType:  contentType,
		ETag:         hex.EncodeToString(h.Sum(nil)),
		LastModified: time.Now().UTC(),
	}, nil
}

func (f *Filesystem) Get(ctx context.Context, key string) (providers.BlobInfo, io.ReadCloser, error) {
	path, err := f.pathFor(key)
	if err != nil {
		return providers.BlobInfo{}, nil, err
	}
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return providers.BlobInfo{}, nil, fmt.Errorf("%s: %w", key, providers.ErrBlobNotFound)
	}
	if err != nil {
		return providers.BlobInfo{}, nil, err
	}
	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return providers.BlobInfo{}, nil, err
	}
	info := providers.BlobInfo{Key: key, Size: stat.Size(), LastModified: stat.ModTime().UTC()}
	if mt, err := mimetype.DetectFile(path); err == nil {
		info.ContentType = mt.String()
	}
	return info, file, nil
}

func (f *Filesystem) Delete(ctx context.Context, key string) (bool, error) {
	path, err := f.pathFor(key)
	if err != nil {
		return false, err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
