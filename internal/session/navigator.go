package session

import "sync"

// Navigator performs the redirect side effects of the session gate
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(path string)

// Navigate calls f(path)
func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

// Recorder is a Navigator that remembers every target, in order
type Recorder struct {
	mu    sync.Mutex
	paths []string
}

// Navigate records path
func (r *Recorder) Navigate(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

// Paths returns every recorded target
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// Last returns the most recent target, or "" when there is none
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.paths) == 0 {
		return ""
	}
	return r.paths[len(r.paths)-1]
}
