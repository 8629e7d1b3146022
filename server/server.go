package server

import (
	"context"
	"go.uber.org/zap"
	"net/http"
	"oamanager/datastore"
	"oamanager/datastore/memory"
	"oamanager/datastore/postgres"
	"oamanager/providers"
	blobprovider "oamanager/providers/blobProvider"
	configprovider "oamanager/providers/configProvider"
	"oamanager/providers/databaseProvider"
	"oamanager/providers/loggerProvider"
	"oamanager/providers/middlewareprovider"
	redisprovider "oamanager/providers/redisProvider"
	"oamanager/serviceprovider/auth"
	assetservice "oamanager/services/asset"
	authservice "oamanager/services/auth"
	inspectionservice "oamanager/services/inspection"
	referenceservice "oamanager/services/reference"
	verificationservice "oamanager/services/verification"
	"time"
)

type Server struct {
	Config     providers.ConfigProvider
	Logger     providers.ZapLoggerProvider
	DB         providers.DBProvider
	Redis      providers.RedisProvider
	Store      datastore.DataStore
	Middleware providers.AuthMiddlewareService

	AuthHandler         *authservice.AuthHandler
	AssetHandler        *assetservice.AssetHandler
	InspectionHandler   *inspectionservice.InspectionHandler
	VerificationHandler *verificationservice.VerificationHandler
	ReferenceHandler    *referenceservice.ReferenceHandler

	httpServer *http.Server
}

// ServerInit builds every provider from the environment and exits the process
// when one of them cannot start.
func ServerInit() *Server {
	cfg := configprovider.NewConfigProvider()
	cfgErr := cfg.LoadEnv()

	logProvider := loggerProvider.NewLogProvider(cfg.GetAppEnv())
	logProvider.InitLogger()
	logger := logProvider.GetLogger()
	if cfgErr != nil {
		logger.Fatal("invalid configuration", zap.Error(cfgErr))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	blobs, err := blobprovider.NewBlobProvider(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to init blob store", zap.Error(err))
	}

	srv := &Server{Config: cfg, Logger: logProvider}

	switch cfg.GetDataBackend() {
	case "postgres":
		db, err := databaseProvider.NewDBProvider(cfg, logger)
		if err != nil {
			logger.Fatal("failed to init postgres", zap.Error(err))
		}
		srv.DB = db
		srv.Store = postgres.New(db.DB(), blobs, logger)
	default:
		srv.Store = memory.New(cfg.GetMockDataDir(), blobs, logger)
	}
	if err := srv.Store.Initialize(ctx); err != nil {
		logger.Fatal("failed to initialize data store", zap.Error(err))
	}

	if addr := cfg.GetRedisAddr(); addr != "" {
		redis := redisprovider.NewRedisProvider(addr)
		if err := redis.Ping(ctx); err != nil {
			logger.Fatal("failed to reach redis", zap.String("addr", addr), zap.Error(err))
		}
		srv.Redis = redis
	}

	tokens := auth.NewTokenService(cfg.GetSecretKey(), cfg.GetTokenTTL(), srv.Redis, logger)

	srv.wireHandlers(blobs, tokens, logger)
	logger.Info("server initialized",
		zap.String("backend", cfg.GetDataBackend()),
		zap.String("blobDriver", blobs.Driver()),
		zap.Bool("redis", srv.Redis != nil))
	return srv
}

// wireHandlers builds services and handlers on top of an initialized store.
func (s *Server) wireHandlers(blobs providers.BlobProvider, tokens providers.TokenProvider, logger *zap.Logger) {
	s.Middleware = middlewareprovider.NewAuthMiddlewareService(tokens, logger)

	assetService := assetservice.NewAssetService(s.Store, logger)
	inspectionService := inspectionservice.NewInspectionService(s.Store, logger)
	verificationService := verificationservice.NewVerificationService(s.Store, blobs, logger)
	referenceService := referenceservice.NewReferenceService(s.Store, logger)

	s.AuthHandler = authservice.NewAuthHandler(tokens, logger)
	s.AssetHandler = assetservice.NewAssetHandler(assetService, logger)
	s.InspectionHandler = inspectionservice.NewInspectionHandler(inspectionService, logger)
	s.VerificationHandler = verificationservice.NewVerificationHandler(verificationService, logger)
	s.ReferenceHandler = referenceservice.NewReferenceHandler(referenceService, logger)
}

func (s *Server) Start() {
	addr := ":" + s.Config.GetServerPort()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.InjectRoutes(),
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	s.Logger.GetLogger().Info("server running", zap.String("addr", addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.Logger.GetLogger().Fatal("server error", zap.Error(err))
	}
}

func (s *Server) Stop() {
	logger := s.Logger.GetLogger()
	logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			logger.Error("error shutting down server", zap.Error(err))
		}
	}
	if err := s.Store.Close(); err != nil {
		logger.Error("error closing data store", zap.Error(err))
	}
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			logger.Error("error closing DB", zap.Error(err))
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Error("error closing redis", zap.Error(err))
		}
	}
	logger.Info("server shutdown complete")
	s.Logger.SyncLogger()
}
