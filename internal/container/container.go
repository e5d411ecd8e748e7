package container

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Lifecycle selects how often a registered factory runs.
type Lifecycle int

const (
	// Singleton runs the factory once on first resolve and caches the
	// result for every subsequent call.
	Singleton Lifecycle = iota

	// Transient runs the factory fresh on every resolve.
	Transient
)

// String returns the lifecycle tag name.
func (l Lifecycle) String() string {
	if l == Transient {
		return "transient"
	}
	return "singleton"
}

// Factory produces a service instance.
type Factory func() (any, error)

// UnresolvedDependencyError reports a resolve call for a key that was
// never registered. It is local to the calling operation and does not
// invalidate the container.
type UnresolvedDependencyError struct {
	Key string
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("no dependency registered under key %q", e.Key)
}

// ErrContainerClosed is returned by Resolve after Close.
var ErrContainerClosed = errors.New("container is closed")

type entry struct {
	factory   Factory
	lifecycle Lifecycle

	once     sync.Once
	instance any
	err      error
}

// Container is a flat keyed registry of factories and instances. All
// methods are safe for concurrent use; a singleton factory runs at most
// once even under concurrent first-time resolution.
type Container struct {
	mu      sync.RWMutex
	entries map[string]*entry
	closed  bool
}

// New creates an empty Container.
func New() *Container {
	return &Container{entries: make(map[string]*entry)}
}

// Register binds a factory to a key with the given lifecycle. It returns
// true when the key is new and false when an existing entry was replaced.
func (c *Container) Register(key string, factory Factory, lifecycle Lifecycle) bool {
	if key == "" {
		panic("container: key must not be empty")
	}
	if factory == nil {
		panic(fmt.Sprintf("container: nil factory for key %q", key))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, replaced := c.entries[key]
	c.entries[key] = &entry{factory: factory, lifecycle: lifecycle}
	if replaced {
		slog.Debug("Replacing container registration.", "key", key, "lifecycle", lifecycle.String())
	}
	return !replaced
}

// RegisterInstance binds an already-constructed singleton to a key. It
// returns true when the key is new and false when an existing entry was
// replaced.
func (c *Container) RegisterInstance(key string, instance any) bool {
	return c.Register(key, func() (any, error) { return instance, nil }, Singleton)
}

// Resolve returns the instance bound to key, invoking its factory per the
// registered lifecycle. An unregistered key yields an
// UnresolvedDependencyError; a closed container yields ErrContainerClosed.
func (c *Container) Resolve(key string) (any, error) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return nil, ErrContainerClosed
	}
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, &UnresolvedDependencyError{Key: key}
	}

	if e.lifecycle == Transient {
		return e.factory()
	}

	e.once.Do(func() {
		e.instance, e.err = e.factory()
	})
	if e.err != nil {
		return nil, fmt.Errorf("constructing singleton %q: %w", key, e.err)
	}
	return e.instance, nil
}

// Has reports whether a key is registered.
func (c *Container) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// Keys returns the registered keys in unspecified order.
func (c *Container) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Close releases the container: cached singleton instances implementing
// io.Closer are closed, and every later Resolve fails with
// ErrContainerClosed. Close is idempotent; the first close error wins.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	var firstErr error
	for key, e := range c.entries {
		if e.lifecycle != Singleton {
			continue
		}
		// Synchronize with any in-flight factory run before reading
		// the cached instance.
		e.once.Do(func() {})
		if e.instance == nil {
			continue
		}
		if closer, ok := e.instance.(io.Closer); ok {
			if err := closer.Close(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("closing singleton %q: %w", key, err)
			}
		}
	}
	return firstErr
}
