// Package blockinput provides the critical section that protects display
// registry, connection, and frame-binding state while toolkit callbacks can
// fire. It mirrors the host editor's block_input/unblock_input discipline:
// every mutation of shared bridge structures happens between Block and
// Unblock, and the guard is released on every exit path.
package blockinput

import "sync"

// Guard is a non-reentrant critical section. Calling Block twice from the
// same goroutine without an intervening Unblock deadlocks, which is the
// intended failure mode: nested acquisition means a lifecycle hook mutated
// shared state while another mutation was in flight.
type Guard struct {
	mu sync.Mutex
}

// Block enters the critical section.
func (g *Guard) Block() {
	g.mu.Lock()
}

// Unblock leaves the critical section.
func (g *Guard) Unblock() {
	g.mu.Unlock()
}

// With runs fn inside the critical section. The guard is released even if fn
// panics, so early-return error paths inside fn cannot leak the lock.
func (g *Guard) With(fn func()) {
	g.Block()
	defer g.Unblock()
	fn()
}
