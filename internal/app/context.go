package app

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// DuplicateInitializationError reports a second independent Init attempt
// while a context is already Ready.
type DuplicateInitializationError struct {
	InstanceTag string
}

func (e *DuplicateInitializationError) Error() string {
	return fmt.Sprintf("application context already initialized (instance %s)", e.InstanceTag)
}

// The context lifecycle: uninitialized -> initializing -> ready, or
// uninitialized -> initializing -> failed. Failed is terminal for the
// process.
type state int

const (
	stateUninitialized state = iota
	stateInitializing
	stateReady
	stateFailed
)

var (
	mu      sync.Mutex
	current *App
	st      state
	initErr error
)

// Init creates the process-wide application context. Exactly one caller
// performs assembly and container population; concurrent callers block
// until that attempt settles and then observe its outcome. Once Ready, a
// later Init returns the live instance together with a
// DuplicateInitializationError. Once failed, every later Init returns
// the original failure; there is no automatic retry.
func Init(ctx context.Context, outW io.Writer, cfg Config) (*App, error) {
	validated, err := NewConfig(cfg)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()

	switch st {
	case stateReady:
		return current, &DuplicateInitializationError{InstanceTag: current.InstanceTag()}
	case stateFailed:
		return nil, fmt.Errorf("application context initialization previously failed: %w", initErr)
	}

	st = stateInitializing
	a, err := newApp(ctx, outW, validated)
	if err != nil {
		st = stateFailed
		initErr = err
		return nil, err
	}

	current = a
	st = stateReady
	return a, nil
}

// Current returns the Ready application context, or ok=false when no
// context is live (never initialized, still initializing, or failed).
func Current() (*App, bool) {
	mu.Lock()
	defer mu.Unlock()
	if st != stateReady {
		return nil, false
	}
	return current, true
}
