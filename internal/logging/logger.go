package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/config"
)

const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Logger is the process-wide logrus logger plus the sinks that need closing on exit.
type Logger struct {
	*logrus.Logger
	closers []io.Closer
}

// New builds a logger from cfg. Output "file" rotates through lumberjack and
// "both" tees stdout and the file. A Logstash address adds a TCP hook.
func New(cfg config.LoggingConfig) (*Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(newFormatter(cfg.Format))

	out := &Logger{Logger: logger}

	switch strings.ToLower(strings.TrimSpace(cfg.Output)) {
	case "file":
		file, err := newRotatingFile(cfg)
		if err != nil {
			return nil, err
		}
		logger.SetOutput(file)
		out.closers = append(out.closers, file)
	case "both":
		file, err := newRotatingFile(cfg)
		if err != nil {
			return nil, err
		}
		logger.SetOutput(io.MultiWriter(os.Stdout, file))
		out.closers = append(out.closers, file)
	default:
		logger.SetOutput(os.Stdout)
	}

	if addr := strings.TrimSpace(cfg.LogstashTCPAddr); addr != "" {
		hook, err := NewLogstashHook(addr)
		if err != nil {
			return nil, err
		}
		logger.AddHook(hook)
		out.closers = append(out.closers, hook)
	}

	return out, nil
}

// Close flushes and releases every sink opened by New.
func (l *Logger) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func newFormatter(format string) logrus.Formatter {
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		return &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"}
	}
	return &logrus.JSONFormatter{TimestampFormat: timestampFormat}
}

func newRotatingFile(cfg config.LoggingConfig) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("logging: create log dir: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}, nil
}
