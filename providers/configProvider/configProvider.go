package configprovider

import (
	"fmt"
	"github.com/joho/godotenv"
	"log"
	"oamanager/providers"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultServerPort     = "3000"
	defaultDataBackend    = "memory"
	defaultMockDataDir    = "./mock"
	defaultBlobDriver     = "fs"
	defaultSignatureDir   = "./storage"
	defaultSSLMode        = "disable"
	defaultPoolMax        = 10
	defaultPoolIdleMillis = 30000
	defaultTokenTTLSecs   = 3600
)

type EnvConfigProvider struct {
	appEnv       string
	serverPort   string
	dataBackend  string
	databaseURL  string
	dbUser       string
	dbPassword   string
	dbHost       string
	dbPort       string
	dbName       string
	sslMode      string
	poolMax      int
	poolIdle     time.Duration
	mockDataDir  string
	blobDriver   string
	signatureDir string
	s3           providers.S3Config
	redisAddr    string
	secretKey    string
	tokenTTL     time.Duration
	corsOrigins  []string
}

func NewConfigProvider() providers.ConfigProvider {
	return &EnvConfigProvider{}
}

// LoadEnv reads .env when present, then the process environment.
func (e *EnvConfigProvider) LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not loaded, using system envs")
	}

	e.appEnv = os.Getenv("APP_ENV")
	e.serverPort = envOr("SERVER_PORT", defaultServerPort)
	e.dataBackend = strings.ToLower(envOr("DATA_BACKEND", defaultDataBackend))
	e.databaseURL = os.Getenv("DATABASE_URL")
	e.dbUser = os.Getenv("DB_USER")
	e.dbPassword = os.Getenv("DB_PASSWORD")
	e.dbHost = os.Getenv("DB_HOST")
	e.dbPort = os.Getenv("DB_PORT")
	e.dbName = os.Getenv("DB_NAME")
	e.sslMode = envOr("PGSSLMODE", defaultSSLMode)
	e.mockDataDir = envOr("MOCK_DATA_DIR", defaultMockDataDir)
	e.blobDriver = strings.ToLower(envOr("BLOB_DRIVER", defaultBlobDriver))
	e.signatureDir = envOr("SIGNATURE_DIR", defaultSignatureDir)
	e.redisAddr = os.Getenv("REDIS_ADDR")
	e.secretKey = os.Getenv("SECRET_KEY")
	e.s3 = providers.S3Config{
		Bucket:    os.Getenv("S3_BUCKET"),
		Region:    os.Getenv("S3_REGION"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		PathStyle: envBool("S3_PATH_STYLE"),
	}

	var err error
	if e.poolMax, err = envInt("PGPOOL_MAX", defaultPoolMax); err != nil {
		return err
	}
	idle, err := envInt("PGPOOL_IDLE_TIMEOUT", defaultPoolIdleMillis)
	if err != nil {
		return err
	}
	e.poolIdle = time.Duration(idle) * time.Millisecond
	ttl, err := envInt("TOKEN_TTL_SECONDS", defaultTokenTTLSecs)
	if err != nil {
		return err
	}
	e.tokenTTL = time.Duration(ttl) * time.Second

	e.corsOrigins = nil
	for _, origin := range strings.Split(envOr("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			e.corsOrigins = append(e.corsOrigins, origin)
		}
	}

	switch e.dataBackend {
	case "memory", "postgres":
	default:
		return fmt.Errorf("unsupported DATA_BACKEND %q", e.dataBackend)
	}
	return nil
}

func (e *EnvConfigProvider) GetAppEnv() string { return e.appEnv }

func (e *EnvConfigProvider) GetServerPort() string {
	return e.serverPort
}

func (e *EnvConfigProvider) GetDataBackend() string { return e.dataBackend }

// GetDatabaseString prefers DATABASE_URL over the discrete DB_* variables.
func (e *EnvConfigProvider) GetDatabaseString() string {
	if e.databaseURL != "" {
		return e.databaseURL
	}
	return fmt.Sprintf("user=%s password=%s host=%s port=%s dbname=%s sslmode=%s",
		e.dbUser, e.dbPassword, e.dbHost, e.dbPort, e.dbName, e.sslMode)
}

func (e *EnvConfigProvider) GetPoolMaxConns() int { return e.poolMax }

func (e *EnvConfigProvider) GetPoolIdleTimeout() time.Duration { return e.poolIdle }

func (e *EnvConfigProvider) GetMockDataDir() string { return e.mockDataDir }

func (e *EnvConfigProvider) GetBlobDriver() string { return e.blobDriver }

func (e *EnvConfigProvider) GetSignatureDir() string { return e.signatureDir }

func (e *EnvConfigProvider) GetS3Config() providers.S3Config { return e.s3 }

func (e *EnvConfigProvider) GetRedisAddr() string { return e.redisAddr }

func (e *EnvConfigProvider) GetSecretKey() string { return e.secretKey }

func (e *EnvConfigProvider) GetTokenTTL() time.Duration { return e.tokenTTL }

func (e *EnvConfigProvider) GetCORSOrigins() []string { return e.corsOrigins }

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return b
}
