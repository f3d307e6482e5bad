// Package viewmodel holds UI-independent state machines that drive the login,
// heroes list, hero detail and splash screens. Screens observe a Binding and
// render whatever state it emits.
package viewmodel

import "sync"

// Binding delivers state changes to a single observer.
type Binding[S any] struct {
	mu       sync.RWMutex
	observer func(S)
}

// Bind replaces the observer.
func (b *Binding[S]) Bind(observer func(S)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observer = observer
}

// Update notifies the observer, if any, on the calling goroutine. Observers
// that touch UI state marshal to their own thread.
func (b *Binding[S]) Update(state S) {
	b.mu.RLock()
	observer := b.observer
	b.mu.RUnlock()

	if observer != nil {
		observer(state)
	}
}
