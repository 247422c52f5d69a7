package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It defaults to a no-op logger so library
// consumers and tests that never call Init still log safely.
var Log = zap.NewNop()

// Init configures the global logger. level is one of "debug", "info",
// "warn", "error" (empty falls back to FEDISYNC_LOG_LEVEL, then "info").
// format is "text" or "json" (empty falls back to FEDISYNC_LOG_FORMAT,
// then "text").
func Init(level, format string) {
	lvl := strings.ToLower(strings.TrimSpace(level))
	if lvl == "" {
		lvl = strings.ToLower(strings.TrimSpace(os.Getenv("FEDISYNC_LOG_LEVEL")))
	}
	var zl zapcore.Level
	switch lvl {
	case "debug":
		zl = zapcore.DebugLevel
	case "warn", "warning":
		zl = zapcore.WarnLevel
	case "error":
		zl = zapcore.ErrorLevel
	default:
		zl = zapcore.InfoLevel
	}

	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		f = strings.ToLower(strings.TrimSpace(os.Getenv("FEDISYNC_LOG_FORMAT")))
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if f == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	sink := zapcore.Lock(os.Stdout)
	// Allow redirecting logs to a file for tests and long-running daemons.
	if s := os.Getenv("FEDISYNC_LOG_SINK"); strings.HasPrefix(s, "file:") {
		path := strings.TrimPrefix(s, "file:")
		if fh, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640); err == nil {
			sink = zapcore.Lock(fh)
		}
	}

	Log = zap.New(zapcore.NewCore(enc, sink, zl))
}

// Sync flushes buffered log entries. Safe to call on the no-op logger.
func Sync() { _ = Log.Sync() }
