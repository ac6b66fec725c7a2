// Package testhelpers contains utilities shared by the package tests.
package testhelpers

import (
	"io"
	"strings"
	"sync"
	"testing"
)

// Writer implements io.Writer and writes to t.Log.
// This allows test logs to be automatically shown only for failed tests.
type Writer struct {
	t    *testing.T
	mu   sync.Mutex
	done bool
}

// NewWriter creates a new Writer that writes to t.Log.
// Pair it with [NewLogger] so that every test gets its own logger.
func NewWriter(t *testing.T) io.Writer {
	w := &Writer{t: t, mu: sync.Mutex{}, done: false}
	// t.Log panics after the test has finished so stop forwarding at cleanup.
	t.Cleanup(func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.done = true
	})
	return w
}

// Write implements io.Writer by writing to t.Log.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		return len(p), nil
	}
	// Remove trailing newlines to avoid double-spacing in test output.
	if output := strings.TrimSuffix(string(p), "\n"); output != "" {
		w.t.Helper()
		w.t.Log(output)
	}
	return len(p), nil
}
