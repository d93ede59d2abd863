// Package logging builds the zap.SugaredLogger every Ember component is
// threaded through.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a development-style, human-readable logger named for service
// (colored level, no caller/stacktrace noise).
func New(service string) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true

	logger := zap.Must(cfg.Build())
	return logger.Named(service).Sugar()
}

// Noop returns a logger that discards everything, for callers (tests, the
// ember facade) that don't care about log output but still need a
// *zap.SugaredLogger to pass to an Open function.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
