package object

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassVars(t *testing.T) {
	r := NewRegistry()

	t.Run("per-type variable", func(t *testing.T) {
		tm, err := NewType("Gauge").
			WithRegistry(r).
			ClassVar("scale", 10).
			Finalize()
		require.NoError(t, err)

		v, err := tm.ClassVarLoad("scale")
		require.NoError(t, err)
		assert.Equal(t, 10, v)

		require.NoError(t, tm.ClassVarStore("scale", 20))
		v, _ = tm.ClassVarLoad("scale")
		assert.Equal(t, 20, v)
	})

	t.Run("unknown variable", func(t *testing.T) {
		tm, err := NewType("Bare").WithRegistry(r).Finalize()
		require.NoError(t, err)
		_, err = tm.ClassVarLoad("nope")
		assert.ErrorIs(t, err, ErrUnknownName)
	})

	t.Run("non-shared variable is invisible from subtypes", func(t *testing.T) {
		base, err := NewType("OwnerOnly").WithRegistry(r).ClassVar("hidden", 1).Finalize()
		require.NoError(t, err)
		sub, err := NewType("OwnerOnlySub", base).WithRegistry(r).Finalize()
		require.NoError(t, err)

		_, err = sub.ClassVarLoad("hidden")
		assert.ErrorIs(t, err, ErrUnknownName)
	})

	t.Run("shared variable is one slot for the hierarchy", func(t *testing.T) {
		base, err := NewType("SharedBase").WithRegistry(r).SharedClassVar("count", 0).Finalize()
		require.NoError(t, err)
		left, err := NewType("SharedLeft", base).WithRegistry(r).Finalize()
		require.NoError(t, err)
		right, err := NewType("SharedRight", base).WithRegistry(r).Finalize()
		require.NoError(t, err)

		_, err = left.ClassVarUpdate("count", func(v any) any { return v.(int) + 1 })
		require.NoError(t, err)
		_, err = right.ClassVarUpdate("count", func(v any) any { return v.(int) + 1 })
		require.NoError(t, err)

		v, err := base.ClassVarLoad("count")
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})
}

func TestSharedCounterAssignsSequentialIDs(t *testing.T) {
	r := NewRegistry()

	var vehicle *TypeMetaobject
	vehicle, err := NewType("Vehicle").
		WithRegistry(r).
		Field(FieldDescriptor{Name: "id", Visibility: Public}).
		SharedClassVar("next_id", 0).
		OnTweak(func(self *Instance) error {
			prev, err := self.Type().ClassVarUpdate("next_id", func(v any) any { return v.(int) + 1 })
			if err != nil {
				return err
			}
			return self.SetField(vehicle, "id", prev)
		}).
		Finalize()
	require.NoError(t, err)

	car, err := NewType("Car", vehicle).WithRegistry(r).Finalize()
	require.NoError(t, err)
	truck, err := NewType("Truck", vehicle).WithRegistry(r).Finalize()
	require.NoError(t, err)

	first, err := Construct(car, nil)
	require.NoError(t, err)
	second, err := Construct(truck, nil)
	require.NoError(t, err)

	id0, _ := first.Get("id")
	id1, _ := second.Get("id")
	assert.Equal(t, 0, id0)
	assert.Equal(t, 1, id1)
}

func TestClassVarConcurrentUpdates(t *testing.T) {
	r := NewRegistry()

	tm, err := NewType("Tally").WithRegistry(r).SharedClassVar("n", 0).Finalize()
	require.NoError(t, err)

	const workers = 16
	const perWorker = 100

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, _ = tm.ClassVarUpdate("n", func(v any) any { return v.(int) + 1 })
			}
		}()
	}
	wg.Wait()

	v, err := tm.ClassVarLoad("n")
	require.NoError(t, err)
	assert.Equal(t, workers*perWorker, v)
}
