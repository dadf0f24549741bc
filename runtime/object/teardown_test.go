package object

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTeardownQueue(t *testing.T) {
	r := NewRegistry()

	t.Run("hooks run most-derived first", func(t *testing.T) {
		var mu sync.Mutex
		var order []string

		base, err := NewType("TDBase").
			WithRegistry(r).
			OnTeardown(func(*Instance) {
				mu.Lock()
				order = append(order, "TDBase")
				mu.Unlock()
			}).
			Finalize()
		require.NoError(t, err)

		derived, err := NewType("TDDerived", base).
			WithRegistry(r).
			OnTeardown(func(*Instance) {
				mu.Lock()
				order = append(order, "TDDerived")
				mu.Unlock()
			}).
			Finalize()
		require.NoError(t, err)

		q := NewTeardownQueue(1, zap.NewNop())
		q.Start()

		in, err := Construct(derived, nil)
		require.NoError(t, err)
		q.Enqueue(in)
		q.Shutdown()

		assert.Equal(t, []string{"TDDerived", "TDBase"}, order)
	})

	t.Run("panicking hook is contained", func(t *testing.T) {
		var survived bool

		angry, err := NewType("TDAngry").
			WithRegistry(r).
			OnTeardown(func(*Instance) { panic("teardown explosion") }).
			Finalize()
		require.NoError(t, err)

		calm, err := NewType("TDCalm", angry).
			WithRegistry(r).
			OnTeardown(func(*Instance) { survived = true }).
			Finalize()
		require.NoError(t, err)

		q := NewTeardownQueue(1, zap.NewNop())
		q.Start()

		in, err := Construct(calm, nil)
		require.NoError(t, err)
		q.Enqueue(in)
		q.Shutdown()

		// TDCalm runs first (most derived); TDAngry's panic afterwards
		// must not have crashed the worker.
		assert.True(t, survived)
	})

	t.Run("enqueue on stopped queue is a no-op", func(t *testing.T) {
		var ran atomic.Bool
		noop, err := NewType("TDNoop").
			WithRegistry(r).
			OnTeardown(func(*Instance) { ran.Store(true) }).
			Finalize()
		require.NoError(t, err)

		q := NewTeardownQueue(1, zap.NewNop())
		// Never started
		in, err := Construct(noop, nil)
		require.NoError(t, err)
		q.Enqueue(in)
		time.Sleep(10 * time.Millisecond)
		assert.False(t, ran.Load())
	})

	t.Run("concurrent enqueue", func(t *testing.T) {
		var count int
		var mu sync.Mutex

		counted, err := NewType("TDCounted").
			WithRegistry(r).
			OnTeardown(func(*Instance) {
				mu.Lock()
				count++
				mu.Unlock()
			}).
			Finalize()
		require.NoError(t, err)

		q := NewTeardownQueue(4, zap.NewNop())
		q.Start()

		const n = 20
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				in, err := Construct(counted, nil)
				if err != nil {
					t.Error(err)
					return
				}
				q.Enqueue(in)
			}()
		}
		wg.Wait()
		q.Shutdown()

		assert.Equal(t, n, count)
	})
}
