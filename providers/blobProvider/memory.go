package blobprovider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"oamanager/providers"
	"sync"
	"time"
)

type blobEntry struct {
	info providers.BlobInfo
	data []byte
}

// Memory keeps blobs in process memory. Used by tests and throwaway setups.
type Memory struct {
	mu   sync.RWMutex
	objs map[string]blobEntry
}

func NewMemory() *Memory { return &Memory{objs: make(map[string]blobEntry)} }

func (m *Memory) Driver() string { return DriverMemory }

func (m *Memory) Put(_ context.Context, key string, r io.Reader, contentType string) (providers.BlobInfo, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return providers.BlobInfo{}, err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return providers.BlobInfo{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.objs[k]; exists {
		return providers.BlobInfo{}, fmt.Errorf("blob %s already exists", key)
	}
	info := providers.BlobInfo{Key: k, Size: int64(len(b)), ContentType: contentType, LastModified: time.Now().UTC()}
	m.objs[k] = blobEntry{info: info, data: b}
	return info, nil
}

func (m *Memory) Get(_ context.Context, key string) (providers.BlobInfo, io.ReadCloser, error) {
	m.mu.RLock()
	obj, ok := m.objs[key]
	m.mu.RUnlock()
	if !ok {
		return providers.BlobInfo{}, nil, fmt.Errorf("%s: %w", key, providers.ErrBlobNotFound)
	}
	data := make([]byte, len(obj.data))
	copy(data, obj.data)
	return obj.info, io.NopCloser(bytes.NewReader(data)), nil
}

func (m *Memory) Delete(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objs[key]
	delete(m.objs, key)
	return ok, nil
}
