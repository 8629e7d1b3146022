package providers

import (
	"context"
	"errors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"io"
	"net/http"
	"time"
)

type AuthMiddlewareService interface {
	BearerAuthMiddleware() func(http.Handler) http.Handler
	GetIdentityFromContext(r *http.Request) (string, error)
}

type ConfigProvider interface {
	LoadEnv() error
	GetAppEnv() string
	GetServerPort() string
	GetDataBackend() string
	GetDatabaseString() string
	GetPoolMaxConns() int
	GetPoolIdleTimeout() time.Duration
	GetMockDataDir() string
	GetBlobDriver() string
	GetSignatureDir() string
	GetS3Config() S3Config
	GetRedisAddr() string
	GetSecretKey() string
	GetTokenTTL() time.Duration
	GetCORSOrigins() []string
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
}

type DBProvider interface {
	DB() *sqlx.DB
	Close() error
}

type ZapLoggerProvider interface {
	InitLogger()
	SyncLogger()
	GetLogger() *zap.Logger
}

type RedisProvider interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// TokenProvider issues and checks opaque bearer tokens.
type TokenProvider interface {
	Issue(ctx context.Context, identity string) (token string, ttl time.Duration, err error)
	Verify(ctx context.Context, token string) (identity string, ok bool)
	Revoke(ctx context.Context, token string) error
}

type BlobInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"contentType,omitempty"`
	ETag         string    `json:"etag,omitempty"`
	LastModified time.Time `json:"lastModified"`
}

// BlobProvider stores signature images. Keys are flat object names.
type BlobProvider interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (BlobInfo, error)
	Get(ctx context.Context, key string) (BlobInfo, io.ReadCloser, error)
	Delete(ctx context.Context, key string) (bool, error)
	Driver() string
}

var (
	// ErrBlobNotFound is returned by BlobProvider.Get for unknown keys.
	ErrBlobNotFound = errors.New("blob not found")
	// ErrCacheMiss is returned by RedisProvider.Get for unknown keys.
	ErrCacheMiss = errors.New("cache miss")
)
