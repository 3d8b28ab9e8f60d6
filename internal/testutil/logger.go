package testutil

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// NopLogger returns a logger that discards all output.
// Use this in tests to avoid log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// LogRecorder is a slog.Handler that keeps every record for assertions
type LogRecorder struct {
	mu      sync.Mutex
	records []slog.Record
}

// NewLogRecorder returns a recorder and a logger writing to it
func NewLogRecorder() (*LogRecorder, *slog.Logger) {
	rec := &LogRecorder{}
	return rec, slog.New(rec)
}

func (r *LogRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *LogRecorder) Handle(_ context.Context, record slog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record.Clone())
	return nil
}

func (r *LogRecorder) WithAttrs([]slog.Attr) slog.Handler { return r }

func (r *LogRecorder) WithGroup(string) slog.Handler { return r }

// Messages returns the messages logged at level
func (r *LogRecorder) Messages(level slog.Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var msgs []string
	for _, record := range r.records {
		if record.Level == level {
			msgs = append(msgs, record.Message)
		}
	}
	return msgs
}

// Attr returns the first value logged under key for message msg
func (r *LogRecorder) Attr(msg, key string) (slog.Value, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.records {
		if record.Message != msg {
			continue
		}
		var found slog.Value
		var ok bool
		record.Attrs(func(a slog.Attr) bool {
			if a.Key == key {
				found, ok = a.Value, true
				return false
			}
			return true
		})
		if ok {
			return found, true
		}
	}
	return slog.Value{}, false
}
