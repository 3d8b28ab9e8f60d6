package web

import (
	"sync"
	"time"

	"github.com/mcoot/qrinvite/internal/dependencies/clock"
	"github.com/mcoot/qrinvite/internal/pages"
)

// DefaultTabIdleTimeout matches the redis tab TTL, so page state does not
// outlive the identity it belongs to
const DefaultTabIdleTimeout = 12 * time.Hour

type tabEntry struct {
	tab      *pages.Tab
	lastSeen time.Time
}

// TabRegistry keeps the in-process page state of signed-in tabs.
// Identities live in the session storage; this only holds what a page
// keeps between requests (current QR code, list cache, upload).
// Entries idle for longer than the idle timeout are dropped.
type TabRegistry struct {
	newTab      func(tabID string) *pages.Tab
	clock       clock.Clock
	idleTimeout time.Duration

	mu   sync.Mutex
	tabs map[string]*tabEntry
}

// NewTabRegistry creates a registry that builds tabs with newTab.
// A zero idleTimeout means DefaultTabIdleTimeout.
func NewTabRegistry(newTab func(tabID string) *pages.Tab, clk clock.Clock, idleTimeout time.Duration) *TabRegistry {
	if idleTimeout <= 0 {
		idleTimeout = DefaultTabIdleTimeout
	}
	return &TabRegistry{
		newTab:      newTab,
		clock:       clk,
		idleTimeout: idleTimeout,
		tabs:        make(map[string]*tabEntry),
	}
}

// Tab returns the page state of tabID, creating it on first use.
// Creating a tab also sweeps out idle ones.
func (r *TabRegistry) Tab(tabID string) *pages.Tab {
	now := r.clock.Now()

	r.mu.Lock()
	entry, ok := r.tabs[tabID]
	var expired []*pages.Tab
	if !ok {
		expired = r.sweepLocked(now)
		entry = &tabEntry{tab: r.newTab(tabID)}
		r.tabs[tabID] = entry
	}
	entry.lastSeen = now
	r.mu.Unlock()

	for _, tab := range expired {
		tab.Creator.Reset()
	}
	return entry.tab
}

func (r *TabRegistry) sweepLocked(now time.Time) []*pages.Tab {
	var expired []*pages.Tab
	for id, entry := range r.tabs {
		if now.Sub(entry.lastSeen) > r.idleTimeout {
			expired = append(expired, entry.tab)
			delete(r.tabs, id)
		}
	}
	return expired
}

// Forget releases and drops the page state of tabID
func (r *TabRegistry) Forget(tabID string) {
	r.mu.Lock()
	entry, ok := r.tabs[tabID]
	delete(r.tabs, tabID)
	r.mu.Unlock()

	if ok {
		entry.tab.Creator.Reset()
	}
}

// Len returns the number of tabs holding page state
func (r *TabRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tabs)
}
