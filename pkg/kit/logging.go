package kit

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSizeMB  = 64
	logMaxBackups = 7
	logMaxAgeDays = 7
)

// NewLogger builds the production JSON logger tagged with the service name.
// When file is set, entries are also written to a size-rotated log file.
func NewLogger(service, file string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.InitialFields = map[string]any{"service": service}

	if file == "" {
		l, err := cfg.Build()
		if err != nil {
			return zap.NewNop()
		}
		return l
	}

	enc := zapcore.NewJSONEncoder(cfg.EncoderConfig)
	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), cfg.Level),
		rotatedCore(cfg, file),
	)

	return zap.New(core, zap.AddCaller()).With(zap.String("service", service))
}

// NewFileLogger writes only to the rotated file, for programs whose stdout
// is their user interface.
func NewFileLogger(service, file string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	return zap.New(rotatedCore(cfg, file), zap.AddCaller()).With(zap.String("service", service))
}

func rotatedCore(cfg zap.Config, file string) zapcore.Core {
	rotated := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
	}
	return zapcore.NewCore(zapcore.NewJSONEncoder(cfg.EncoderConfig), zapcore.AddSync(rotated), cfg.Level)
}
