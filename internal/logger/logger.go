package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ContextKey string

const RequestIDKey ContextKey = "requestID"

type Config struct {
	// trace, debug, info, warn, error
	Level string `env:"LEVEL" envDefault:"info"`
	// json or text
	Format string `env:"FORMAT" envDefault:"text"`
	// stdout, file or both
	Output string `env:"OUTPUT" envDefault:"stdout"`

	Path       string `env:"PATH" envDefault:"./logs"`
	File       string `env:"FILE" envDefault:"app.log"`
	MaxSize    int    `env:"MAX_SIZE" envDefault:"100"` // MB
	MaxBackups int    `env:"MAX_BACKUPS" envDefault:"7"`
	MaxAge     int    `env:"MAX_AGE" envDefault:"7"` // days
	Compress   bool   `env:"COMPRESS" envDefault:"true"`
}

var std = logrus.New()

// Init configures the process-wide logger. Safe to skip in tests.
func Init(cfg Config) {
	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	std.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		std.SetFormatter(&logrus.JSONFormatter{})
	} else {
		std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var writers []io.Writer
	output := strings.ToLower(cfg.Output)
	if output == "file" || output == "both" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Path, cfg.File),
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
	}
	if output != "file" {
		writers = append(writers, os.Stdout)
	}
	std.SetOutput(io.MultiWriter(writers...))
}

func Get() *logrus.Logger {
	return std
}

// WithContext returns an entry carrying the request id stored in ctx, if any.
func WithContext(ctx context.Context) *logrus.Entry {
	entry := std.WithContext(ctx)
	if ctx == nil {
		return entry
	}
	if rid, ok := ctx.Value(RequestIDKey).(string); ok && rid != "" {
		entry = entry.WithField("request_id", rid)
	}
	return entry
}
