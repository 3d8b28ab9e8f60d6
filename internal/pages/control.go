package pages

import "sync/atomic"

// Control is the in-flight guard of one triggering control (a submit
// button). While an action holds it, a second submission is rejected.
type Control struct {
	busy atomic.Bool
}

// TryAcquire disables the control; it returns false if it was already disabled
func (c *Control) TryAcquire() bool {
	return c.busy.CompareAndSwap(false, true)
}

// Release re-enables the control
func (c *Control) Release() {
	c.busy.Store(false)
}

// Disabled reports whether an action is in flight
func (c *Control) Disabled() bool {
	return c.busy.Load()
}
