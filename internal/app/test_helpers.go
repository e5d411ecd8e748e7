package app

import "testing"

// ResetForTest rewinds the process-wide context state so singleton tests
// can run in one process. Production code must never call this; the
// single-initialization contract only holds if it does not.
func ResetForTest(t *testing.T) {
	t.Helper()

	mu.Lock()
	defer mu.Unlock()
	if current != nil {
		_ = current.Container().Close()
	}
	current = nil
	st = stateUninitialized
	initErr = nil
}
