package utils

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey string

const loggerKey = contextKey("logger")

// LoggerOptions configures NewLogger.
type LoggerOptions struct {
	Level    string
	FilePath string
	Text     bool
}

// NewLogger initializes a single logger that can log at multiple levels.
// When FilePath is set, output goes to stdout and a rotating log file.
func NewLogger(opts LoggerOptions) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	var out io.Writer = os.Stdout
	if opts.FilePath != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	logger.SetOutput(out)

	if opts.Text {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}

func WithLogger(ctx context.Context, logger *logrus.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func LoggerFromContext(ctx context.Context) *logrus.Logger {
	logger, ok := ctx.Value(loggerKey).(*logrus.Logger)
	if !ok {
		// Fallback to a default logger if none is found
		defaultLogger := logrus.New()
		defaultLogger.SetLevel(logrus.InfoLevel)
		defaultLogger.SetFormatter(&logrus.TextFormatter{})
		return defaultLogger
	}
	return logger
}
