package helper

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// LogHandlerSpy is a slog.Handler that captures log records for testing.
// Use it with slog.New to get a circulation.Logger.
type LogHandlerSpy struct {
	records     []slog.Record
	mu          sync.Mutex
	logToStdout bool
}

// NewLogHandlerSpy creates a LogHandlerSpy.
// Switchable to log to stdout, which helps when debugging a test.
func NewLogHandlerSpy(logToStdout bool) *LogHandlerSpy {
	return &LogHandlerSpy{
		records:     make([]slog.Record, 0),
		logToStdout: logToStdout,
	}
}

// Handle implements slog.Handler.
func (s *LogHandlerSpy) Handle(ctx context.Context, record slog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)

	if s.logToStdout {
		_ = slog.NewJSONHandler(os.Stdout, nil).Handle(ctx, record)
	}

	return nil
}

// Enabled implements slog.Handler, all levels are captured.
func (s *LogHandlerSpy) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler. Attributes given this way are not captured.
func (s *LogHandlerSpy) WithAttrs(_ []slog.Attr) slog.Handler {
	return s
}

// WithGroup implements slog.Handler.
func (s *LogHandlerSpy) WithGroup(_ string) slog.Handler {
	return s
}

// RecordCount returns the number of captured records.
func (s *LogHandlerSpy) RecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// HasInfoLogWithMessage starts a fluent chain over the info records with the message.
func (s *LogHandlerSpy) HasInfoLogWithMessage(message string) *LogRecordMatcher {
	return s.matcher(slog.LevelInfo, message)
}

// HasWarnLogWithMessage starts a fluent chain over the warn records with the message.
func (s *LogHandlerSpy) HasWarnLogWithMessage(message string) *LogRecordMatcher {
	return s.matcher(slog.LevelWarn, message)
}

// HasErrorLogWithMessage starts a fluent chain over the error records with the message.
func (s *LogHandlerSpy) HasErrorLogWithMessage(message string) *LogRecordMatcher {
	return s.matcher(slog.LevelError, message)
}

func (s *LogHandlerSpy) matcher(level slog.Level, message string) *LogRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := make([]slog.Record, 0)

	for _, record := range s.records {
		if record.Level == level && record.Message == message {
			candidates = append(candidates, record)
		}
	}

	return &LogRecordMatcher{candidates: candidates}
}

// LogRecordMatcher narrows down log records by their attributes.
type LogRecordMatcher struct {
	candidates []slog.Record
}

func (m *LogRecordMatcher) keep(predicate func(slog.Attr) bool) *LogRecordMatcher {
	kept := make([]slog.Record, 0, len(m.candidates))

	for _, record := range m.candidates {
		found := false

		record.Attrs(func(attr slog.Attr) bool {
			found = predicate(attr)
			return !found
		})

		if found {
			kept = append(kept, record)
		}
	}

	m.candidates = kept

	return m
}

// WithDurationMS keeps only records carrying a non-negative duration_ms attribute.
func (m *LogRecordMatcher) WithDurationMS() *LogRecordMatcher {
	return m.keep(func(attr slog.Attr) bool {
		return attr.Key == "duration_ms" && attr.Value.Kind() == slog.KindFloat64 && attr.Value.Float64() >= 0
	})
}

// WithRowCount keeps only records carrying a row_count attribute.
func (m *LogRecordMatcher) WithRowCount() *LogRecordMatcher {
	return m.WithAttributeKey("row_count")
}

// WithAttributeKey keeps only records carrying the attribute, whatever its value.
func (m *LogRecordMatcher) WithAttributeKey(key string) *LogRecordMatcher {
	return m.keep(func(attr slog.Attr) bool { return attr.Key == key })
}

// WithAttribute keeps only records carrying the attribute with a value rendering as value.
func (m *LogRecordMatcher) WithAttribute(key, value string) *LogRecordMatcher {
	return m.keep(func(attr slog.Attr) bool { return attr.Key == key && attr.Value.String() == value })
}

// Assert returns true if any record survived the chain.
func (m *LogRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}
