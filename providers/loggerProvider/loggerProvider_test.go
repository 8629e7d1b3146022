package loggerProvider

import (
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
	"testing"
)

func TestLogProvider(t *testing.T) {
	tests := []struct {
		name       string
		appEnv     string
		debugLevel bool
	}{
		{name: "development logs debug", appEnv: "", debugLevel: true},
		{name: "production starts at info", appEnv: "production", debugLevel: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewLogProvider(tc.appEnv)
			assert.NotNil(t, p.GetLogger())

			p.InitLogger()
			defer p.SyncLogger()
			assert.Equal(t, tc.debugLevel, p.GetLogger().Core().Enabled(zapcore.DebugLevel))
		})
	}
}
