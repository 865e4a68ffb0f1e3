package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the global logger instance. It is a no-op logger until InitLogger runs,
// so packages can log from tests without any setup.
var Log = zap.NewNop()

// Config holds configuration for the logger
type Config struct {
	Level string
	// Production switches to JSON output
	Production bool
	// ErrorLogFile receives a copy of every error-level entry (and recovered panics)
	ErrorLogFile string
}

// InitLogger initializes the global logger from the environment.
// LOG_LEVEL selects the level and ENV=production selects JSON output.
func InitLogger(errorLogFile string) error {
	return InitLoggerWithConfig(Config{
		Level:        getEnvWithDefault("LOG_LEVEL", "info"),
		Production:   os.Getenv("ENV") == "production",
		ErrorLogFile: errorLogFile,
	})
}

// InitLoggerWithConfig initializes the global logger with custom configuration
func InitLoggerWithConfig(cfg Config) error {
	level := parseLevel(cfg.Level)

	var encCfg zapcore.EncoderConfig
	var encoder zapcore.Encoder
	if cfg.Production {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.TimeKey = "timestamp"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encCfg.EncodeCaller = zapcore.ShortCallerEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), zap.NewAtomicLevelAt(level)),
	}

	if cfg.ErrorLogFile != "" {
		f, err := os.OpenFile(cfg.ErrorLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(f), zapcore.ErrorLevel))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return nil
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Sync flushes buffered entries
func Sync() {
	_ = Log.Sync()
}

// Info logs a message at InfoLevel
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Error logs a message at ErrorLevel
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}

// Debug logs a message at DebugLevel
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Warn logs a message at WarnLevel
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}
