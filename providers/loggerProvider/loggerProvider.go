package loggerProvider

import (
	"go.uber.org/zap"
	"log"
	"oamanager/providers"
)

type LogProvider struct {
	appEnv string
	logger *zap.Logger
}

// NewLogProvider builds a production logger when appEnv is "production" and
// a development logger otherwise.
func NewLogProvider(appEnv string) providers.ZapLoggerProvider {
	return &LogProvider{appEnv: appEnv}
}

func (l *LogProvider) InitLogger() {
	var err error
	if l.appEnv == "production" {
		l.logger, err = zap.NewProduction()
	} else {
		l.logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
}

func (l *LogProvider) SyncLogger() {
	if l.logger != nil {
		_ = l.logger.Sync()
	}
}

// GetLogger falls back to a no-op logger before InitLogger runs.
func (l *LogProvider) GetLogger() *zap.Logger {
	if l.logger == nil {
		return zap.NewNop()
	}
	return l.logger
}
