package container

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingService struct {
	id int32
}

func TestSingletonResolvesOnce(t *testing.T) {
	c := New()
	var calls int32

	c.Register("svc", func() (any, error) {
		return &countingService{id: atomic.AddInt32(&calls, 1)}, nil
	}, Singleton)

	first, err := c.Resolve("svc")
	require.NoError(t, err)
	second, err := c.Resolve("svc")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTransientResolvesFresh(t *testing.T) {
	c := New()
	var calls int32

	c.Register("svc", func() (any, error) {
		return &countingService{id: atomic.AddInt32(&calls, 1)}, nil
	}, Transient)

	first, err := c.Resolve("svc")
	require.NoError(t, err)
	second, err := c.Resolve("svc")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestResolveUnregisteredKey(t *testing.T) {
	c := New()
	c.RegisterInstance("known", 42)

	_, err := c.Resolve("ghost")
	var unresolved *UnresolvedDependencyError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "ghost", unresolved.Key)
	assert.Contains(t, err.Error(), "ghost")

	// The failure is local: other keys keep resolving.
	v, err := c.Resolve("known")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestRegisterReplacesLastWriteWins(t *testing.T) {
	c := New()

	assert.True(t, c.RegisterInstance("svc", "first"))
	assert.False(t, c.RegisterInstance("svc", "second"))

	v, err := c.Resolve("svc")
	require.NoError(t, err)
	assert.Equal(t, "second", v)
}

func TestConcurrentSingletonResolution(t *testing.T) {
	c := New()
	var calls int32

	c.Register("svc", func() (any, error) {
		return &countingService{id: atomic.AddInt32(&calls, 1)}, nil
	}, Singleton)

	const goroutines = 32
	results := make([]any, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			v, err := c.Resolve("svc")
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "factory must run exactly once")
	for i := 1; i < goroutines; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestFactoryErrorPropagates(t *testing.T) {
	c := New()
	boom := errors.New("boom")
	c.Register("svc", func() (any, error) { return nil, boom }, Singleton)

	_, err := c.Resolve("svc")
	require.ErrorIs(t, err, boom)

	// The error is sticky for singletons: the factory is not retried.
	_, err = c.Resolve("svc")
	require.ErrorIs(t, err, boom)
}

type closableService struct {
	closed bool
}

func (s *closableService) Close() error {
	s.closed = true
	return nil
}

func TestClose(t *testing.T) {
	c := New()
	svc := &closableService{}
	c.RegisterInstance("svc", svc)
	c.Register("lazy", func() (any, error) { return &closableService{}, nil }, Singleton)

	// Materialize the eager one only.
	_, err := c.Resolve("svc")
	require.NoError(t, err)

	require.NoError(t, c.Close())
	assert.True(t, svc.closed, "cached singleton must be closed")

	_, err = c.Resolve("svc")
	require.ErrorIs(t, err, ErrContainerClosed)

	// Idempotent.
	require.NoError(t, c.Close())
}

func TestRegisterValidation(t *testing.T) {
	c := New()
	assert.Panics(t, func() { c.Register("", func() (any, error) { return nil, nil }, Singleton) })
	assert.Panics(t, func() { c.Register("svc", nil, Singleton) })
}
