package dragonball

import (
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type logEntry struct {
	level string
	msg   string
	kv    []interface{}
}

// recordingLogger keeps every entry for assertions.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, msg string, kv []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, kv: kv})
}

func (l *recordingLogger) Debug(msg string, kv ...interface{}) { l.add("debug", msg, kv) }
func (l *recordingLogger) Info(msg string, kv ...interface{})  { l.add("info", msg, kv) }
func (l *recordingLogger) Warn(msg string, kv ...interface{})  { l.add("warn", msg, kv) }
func (l *recordingLogger) Error(msg string, kv ...interface{}) { l.add("error", msg, kv) }

func (l *recordingLogger) hasValue(v interface{}) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		for _, got := range e.kv {
			if got == v {
				return true
			}
		}
	}
	return false
}

func TestSimpleLoggerLevels(t *testing.T) {
	logger := NewSimpleLogger()

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	for i := 0; i < 5; i++ {
		logger.Info("loop message", "i", i)
	}
}

func TestZapLoggerWritesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Warn("Unexpected status", "endpoint", "host/api", "statusCode", 401)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Level != zapcore.WarnLevel {
		t.Errorf(expectedGotMsg, zapcore.WarnLevel, entry.Level)
	}
	fields := entry.ContextMap()
	if fields["endpoint"] != "host/api" {
		t.Errorf(expectedGotMsg, "host/api", fields["endpoint"])
	}
	if fields["statusCode"] != int64(401) {
		t.Errorf(expectedGotMsg, 401, fields["statusCode"])
	}
}

func TestNewZapLoggerNil(t *testing.T) {
	NewZapLogger(nil).Info("discarded")
}

func TestDefaultDebugConfig(t *testing.T) {
	cfg := DefaultDebugConfig()

	if cfg.Enabled {
		t.Error("Expected debug disabled by default")
	}
	if !cfg.LogRequests || !cfg.LogResponses || !cfg.LogErrors {
		t.Error("Expected every log flag on by default")
	}

	first, second := cfg.RequestIDGen(), cfg.RequestIDGen()
	if !strings.HasPrefix(first, "req_") {
		t.Errorf("Expected req_ prefix, got %q", first)
	}
	if first == second {
		t.Error("Expected unique request IDs")
	}
}
