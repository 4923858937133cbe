package helper

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	levelDebug = "debug"
	levelInfo  = "info"
	levelWarn  = "warn"
	levelError = "error"
)

// SpyContextualLogRecord is one captured contextual log call.
type SpyContextualLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// ContextualLoggerSpy captures contextual log calls for testing. It implements circulation.ContextualLogger.
type ContextualLoggerSpy struct {
	records     []SpyContextualLogRecord
	mu          sync.Mutex
	recordCalls bool
}

var _ circulation.ContextualLogger = (*ContextualLoggerSpy)(nil)

// NewContextualLoggerSpy creates a ContextualLoggerSpy. With recordCalls false it swallows all calls.
func NewContextualLoggerSpy(recordCalls bool) *ContextualLoggerSpy {
	return &ContextualLoggerSpy{recordCalls: recordCalls}
}

func (s *ContextualLoggerSpy) record(ctx context.Context, level, msg string, args []any) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyContextualLogRecord{Level: level, Message: msg, Args: args, Context: ctx})
}

// DebugContext implements circulation.ContextualLogger.
func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, levelDebug, msg, args)
}

// InfoContext implements circulation.ContextualLogger.
func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, levelInfo, msg, args)
}

// WarnContext implements circulation.ContextualLogger.
func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, levelWarn, msg, args)
}

// ErrorContext implements circulation.ContextualLogger.
func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, levelError, msg, args)
}

// HasInfoLog checks for an info call with the message.
func (s *ContextualLoggerSpy) HasInfoLog(msg string) bool {
	return s.has(levelInfo, msg)
}

// HasErrorLog checks for an error call with the message.
func (s *ContextualLoggerSpy) HasErrorLog(msg string) bool {
	return s.has(levelError, msg)
}

// HasLogWithArg checks for a call at any level with the message and the key/value pair in its args.
func (s *ContextualLoggerSpy) HasLogWithArg(msg, key string, value any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Message != msg {
			continue
		}

		for i := 0; i+1 < len(record.Args); i += 2 {
			if record.Args[i] == key && record.Args[i+1] == value {
				return true
			}
		}
	}

	return false
}

// TotalRecordCount returns the number of captured calls on all levels.
func (s *ContextualLoggerSpy) TotalRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

func (s *ContextualLoggerSpy) has(level, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Level == level && record.Message == msg {
			return true
		}
	}

	return false
}
