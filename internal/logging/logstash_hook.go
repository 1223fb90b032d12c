package logging

import (
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var errLogstashCooldown = errors.New("logstash: waiting before reconnect")

// LogstashHook ships every entry as one JSON line to a Logstash TCP input.
// Entries are dropped while the endpoint is unreachable so logging never blocks
// a request on the network.
type LogstashHook struct {
	addr          string
	dialTimeout   time.Duration
	writeTimeout  time.Duration
	retryInterval time.Duration
	formatter     logrus.Formatter

	mu        sync.Mutex
	conn      net.Conn
	nextRetry time.Time
	closed    bool
}

type HookOption func(*LogstashHook)

func WithDialTimeout(d time.Duration) HookOption {
	return func(h *LogstashHook) { h.dialTimeout = d }
}

func WithWriteTimeout(d time.Duration) HookOption {
	return func(h *LogstashHook) { h.writeTimeout = d }
}

// WithRetryInterval sets how long the hook waits after a failed dial or write.
func WithRetryInterval(d time.Duration) HookOption {
	return func(h *LogstashHook) { h.retryInterval = d }
}

func NewLogstashHook(addr string, opts ...HookOption) (*LogstashHook, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logstash: empty address")
	}
	h := &LogstashHook{
		addr:          addr,
		dialTimeout:   2 * time.Second,
		writeTimeout:  time.Second,
		retryInterval: 5 * time.Second,
		formatter: &logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap:        logrus.FieldMap{logrus.FieldKeyTime: "@timestamp"},
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

func (h *LogstashHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire never returns transport errors; logrus would print them to stderr on every entry.
func (h *LogstashHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	if len(line) == 0 || line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed || h.connectLocked() != nil {
		return nil
	}
	if h.writeTimeout > 0 {
		_ = h.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
	}
	if _, err := h.conn.Write(line); err != nil {
		h.dropLocked()
		h.nextRetry = time.Now().Add(h.retryInterval)
	}
	return nil
}

func (h *LogstashHook) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	return h.dropLocked()
}

func (h *LogstashHook) connectLocked() error {
	if h.conn != nil {
		return nil
	}
	if !h.nextRetry.IsZero() && time.Now().Before(h.nextRetry) {
		return errLogstashCooldown
	}
	conn, err := net.DialTimeout("tcp", h.addr, h.dialTimeout)
	if err != nil {
		h.nextRetry = time.Now().Add(h.retryInterval)
		return err
	}
	h.conn = conn
	h.nextRetry = time.Time{}
	return nil
}

func (h *LogstashHook) dropLocked() error {
	if h.conn == nil {
		return nil
	}
	err := h.conn.Close()
	h.conn = nil
	return err
}
