package interpolutil

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevels lists the accepted log level names, most verbose first.
var LogLevels = []string{"debug", "info", "warn", "error", "none"}

// ParseLogLevel parses a log level name, or its first letter. The boolean is
// false for "none", which disables logging.
func ParseLogLevel(s string) (zapcore.Level, bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "d":
		return zapcore.DebugLevel, true, nil
	case "info", "i":
		return zapcore.InfoLevel, true, nil
	case "warn", "w":
		return zapcore.WarnLevel, true, nil
	case "error", "e":
		return zapcore.ErrorLevel, true, nil
	case "none", "n":
		return zapcore.InfoLevel, false, nil
	default:
		return zapcore.InfoLevel, false, fmt.Errorf("invalid log level %q", s)
	}
}

// NewLogger returns a logger writing to w at the named level. Console loggers
// are meant for people, and others write one JSON object per line.
func NewLogger(w io.Writer, level string, console bool) (*zap.Logger, error) {
	lvl, enabled, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return zap.NewNop(), nil
	}

	var (
		encoderConfig = zap.NewProductionEncoderConfig()
		encoder       zapcore.Encoder
	)
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if console {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), lvl)
	return zap.New(core), nil
}
