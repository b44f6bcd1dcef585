package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	service        = "memory_mapping"
	defaultLogFile = "logs/app.log"
)

// New builds a development logger, or in GIN_MODE=release a JSON logger that
// writes to stdout and a rotated LOG_FILE.
func New() (*zap.Logger, error) {
	if os.Getenv("GIN_MODE") != "release" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		return logger.With(zap.String("service", service)), nil
	}

	path := os.Getenv("LOG_FILE")
	if path == "" {
		path = defaultLogFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return zap.New(releaseCore(path), zap.AddCaller()).With(zap.String("service", service)), nil
}

func releaseCore(path string) zapcore.Core {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.NewMultiWriteSyncer(
			zapcore.AddSync(os.Stdout),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   path,
				MaxSize:    50,
				MaxBackups: 5,
				MaxAge:     14,
				Compress:   true,
			}),
		),
		zap.InfoLevel,
	)
}
