package session

import (
	"sync"
	"time"

	"github.com/adforge/adforge-cli/pkg/wizard"
)

// DefaultDebounce is how long the writer coalesces updates before writing.
const DefaultDebounce = 500 * time.Millisecond

// Writer debounces snapshot writes. Every Update replaces the pending
// state; only the latest state at flush time hits the disk. Failures are
// logged through the store's logger and swallowed.
type Writer struct {
	store    *Store
	debounce time.Duration

	mu      sync.Mutex
	pending *wizard.State
	timer   *time.Timer
}

// NewWriter creates a debounced writer over the store.
func NewWriter(store *Store, debounce time.Duration) *Writer {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Writer{store: store, debounce: debounce}
}

// Update schedules the state for persistence, restarting the debounce
// window.
func (w *Writer) Update(s wizard.State) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = &s
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

// Flush writes any pending state immediately. Called on wizard shutdown.
func (w *Writer) Flush() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	w.flush()
}

func (w *Writer) flush() {
	w.mu.Lock()
	s := w.pending
	w.pending = nil
	w.mu.Unlock()

	if s == nil {
		return
	}
	if err := w.store.Save(*s); err != nil {
		// Quota, permissions, read-only disks: all non-fatal.
		w.store.log.WithError(err).Warn("session snapshot write failed")
	}
}
