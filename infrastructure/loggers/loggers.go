package loggers

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type MultiLogger struct {
	loggers []*zap.SugaredLogger
}

func InitializeMultiLogger(logToStdout bool, level string) (*MultiLogger, error) {
	loggers := make([]*zap.SugaredLogger, 0)
	if logToStdout {
		zapLevel, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("error on parsing log level='%s': %v", level, err)
		}
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapLevel)
		cfg.OutputPaths = []string{"stdout"}
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		stdoutLogger, err := cfg.Build(zap.AddCallerSkip(2))
		if err != nil {
			return nil, fmt.Errorf("error on building stdout logger: %v", err)
		}
		loggers = append(loggers, stdoutLogger.Sugar())
	}
	return &MultiLogger{loggers: loggers}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *MultiLogger {
	return &MultiLogger{loggers: []*zap.SugaredLogger{zap.NewNop().Sugar()}}
}

func (multiLogger *MultiLogger) Info(msg string, args ...any) {
	multiLogger.doLog(zapcore.InfoLevel, msg, args...)
}

func (multiLogger *MultiLogger) Warn(msg string, args ...any) {
	multiLogger.doLog(zapcore.WarnLevel, msg, args...)
}

func (multiLogger *MultiLogger) Debug(msg string, args ...any) {
	multiLogger.doLog(zapcore.DebugLevel, msg, args...)
}

func (multiLogger *MultiLogger) Error(msg string, args ...any) {
	multiLogger.doLog(zapcore.ErrorLevel, msg, args...)
}

func (multiLogger *MultiLogger) Fatal(msg string, args ...any) {
	multiLogger.doLog(zapcore.FatalLevel, msg, args...)
}

func (multiLogger *MultiLogger) Sync() {
	for _, logger := range multiLogger.loggers {
		_ = logger.Sync()
	}
}

func (multiLogger *MultiLogger) doLog(level zapcore.Level, msg string, args ...any) {
	for _, logger := range multiLogger.loggers {
		logger.Logf(level, msg, args...)
	}
	// Logf only exits on fatal for loggers that are enabled at that level
	if level == zapcore.FatalLevel {
		multiLogger.Sync()
		os.Exit(1)
	}
}
