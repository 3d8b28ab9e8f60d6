// Package invites caches the invite collection for one list view and
// derives filtered subsets and counts from it.
package invites

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/qrinvite/internal/model"
)

// Source fetches the full invite collection
type Source interface {
	ListInvites(ctx context.Context) ([]model.Invite, time.Duration, error)
}

// Status describes what the cache currently holds
type Status int

const (
	// StatusNotLoaded means Load has never been called
	StatusNotLoaded Status = iota
	// StatusLoaded means the last Load succeeded; the list may be empty
	StatusLoaded
	// StatusFailed means the last Load failed; callers show an error, not an empty list
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusNotLoaded:
		return "not_loaded"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ListState is the in-memory invite cache of a list view
type ListState struct {
	source Source
	logger *slog.Logger

	mu      sync.RWMutex
	invites []model.Invite
	status  Status
	err     error
}

// New creates an empty ListState reading from source
func New(source Source, logger *slog.Logger) *ListState {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &ListState{
		source: source,
		logger: logger,
		status: StatusNotLoaded,
	}
}

// Load fetches the collection and replaces the cache wholesale.
// On failure the previous invites are kept and Status becomes StatusFailed.
func (l *ListState) Load(ctx context.Context) ([]model.Invite, error) {
	invites, elapsed, err := l.source.ListInvites(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		l.status = StatusFailed
		l.err = err
		l.logger.Error("failed to load invites", slog.String("error", err.Error()))
		return nil, err
	}

	l.invites = invites
	l.status = StatusLoaded
	l.err = nil

	l.logger.Info("invites loaded",
		slog.Int("count", len(invites)),
		slog.Duration("elapsed", elapsed),
	)
	return append([]model.Invite(nil), invites...), nil
}

// Invites returns a copy of the cached sequence
func (l *ListState) Invites() []model.Invite {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]model.Invite(nil), l.invites...)
}

// Status returns the cache status
func (l *ListState) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

// Err returns the error of the last failed Load, or nil
func (l *ListState) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// Filter applies text and status to the cached sequence without any network call
func (l *ListState) Filter(text string, status StatusFilter) []model.Invite {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Filter(l.invites, text, status)
}

// Counts recomputes the aggregates from the cached sequence
func (l *ListState) Counts() Counts {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return CountOf(l.invites)
}
