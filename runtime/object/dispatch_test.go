package object

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicDispatch(t *testing.T) {
	r := NewRegistry()

	cook, err := NewType("Cook").
		WithRegistry(r).
		Field(FieldDescriptor{Name: "utensils", Visibility: Public, Kind: Sequence}).
		Field(FieldDescriptor{Name: "cookbooks", Visibility: Public, Kind: Sequence}).
		Method("cook", func(self *Instance, args ...any) (any, error) {
			return fmt.Sprintf("cooking %v", args[0]), nil
		}).
		Finalize()
	require.NoError(t, err)

	baker, err := NewType("Baker", cook).
		WithRegistry(r).
		Method("cook", func(self *Instance, args ...any) (any, error) {
			return fmt.Sprintf("baking %v", args[0]), nil
		}).
		Finalize()
	require.NoError(t, err)

	t.Run("base method dispatches on base instance", func(t *testing.T) {
		in, err := Construct(cook, nil)
		require.NoError(t, err)
		out, err := Call(in, "cook", "stew")
		require.NoError(t, err)
		assert.Equal(t, "cooking stew", out)
	})

	t.Run("override wins on subtype instance", func(t *testing.T) {
		in, err := Construct(baker, nil)
		require.NoError(t, err)
		out, err := Call(in, "cook", "bread")
		require.NoError(t, err)
		assert.Equal(t, "baking bread", out)
	})

	t.Run("miss is NoSuchMethod", func(t *testing.T) {
		in, err := Construct(baker, nil)
		require.NoError(t, err)
		_, err = Call(in, "juggle")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoSuchMethod))
	})

	t.Run("accessor dispatches like a method", func(t *testing.T) {
		in, err := Construct(baker, Named{"utensils": []string{"whisk"}})
		require.NoError(t, err)
		out, err := Call(in, "utensils")
		require.NoError(t, err)
		assert.Equal(t, []string{"whisk"}, out)
	})
}

func TestMutableAccessor(t *testing.T) {
	r := NewRegistry()

	counter, err := NewType("Dial").
		WithRegistry(r).
		Field(FieldDescriptor{Name: "level", Visibility: Public, Mutable: true, Default: func(*Instance) (any, error) { return 0, nil }}).
		Field(FieldDescriptor{Name: "serial", Visibility: Public, Default: func(*Instance) (any, error) { return 1, nil }}).
		Finalize()
	require.NoError(t, err)

	in, err := Construct(counter, nil)
	require.NoError(t, err)

	t.Run("read-write accessor assigns", func(t *testing.T) {
		_, err := Call(in, "level", 7)
		require.NoError(t, err)
		v, err := Call(in, "level")
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})

	t.Run("read-only accessor rejects assignment", func(t *testing.T) {
		_, err := Call(in, "serial", 99)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read-only")
	})

	t.Run("inherited accessor writes the declaring type's slot", func(t *testing.T) {
		knob, err := NewType("Knob", counter).WithRegistry(r).Finalize()
		require.NoError(t, err)

		in, err := Construct(knob, nil)
		require.NoError(t, err)
		_, err = Call(in, "level", 3)
		require.NoError(t, err)

		// The value lives in Dial's slot, readable through the accessor
		// and through the public getter alike.
		v, err := Call(in, "level")
		require.NoError(t, err)
		assert.Equal(t, 3, v)
		got, ok := in.Get("level")
		require.True(t, ok)
		assert.Equal(t, 3, got)
	})

	t.Run("accessor write honors the field constraint", func(t *testing.T) {
		gauge, err := NewType("Gauge").
			WithRegistry(r).
			Field(FieldDescriptor{
				Name:       "percent",
				Visibility: Public,
				Mutable:    true,
				Default:    func(*Instance) (any, error) { return 0, nil },
				Constraint: &Constraint{
					Description: "0..100",
					Check: func(v any) bool {
						n, ok := v.(int)
						return ok && n >= 0 && n <= 100
					},
				},
			}).
			Finalize()
		require.NoError(t, err)

		in, err := Construct(gauge, nil)
		require.NoError(t, err)
		_, err = Call(in, "percent", 150)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTypeConstraintViolation))

		_, err = Call(in, "percent", 42)
		require.NoError(t, err)
		v, err := Call(in, "percent")
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})
}

func TestPrivateDispatch(t *testing.T) {
	r := NewRegistry()

	// C declares a private method and a private field, and trusts B.
	c, err := NewType("C").
		WithRegistry(r).
		Field(FieldDescriptor{Name: "secret", Visibility: Private, Default: func(*Instance) (any, error) { return "classified", nil }}).
		PrivateMethod("whisper", func(self *Instance, _ ...any) (any, error) {
			v, _ := self.slot("C", "secret")
			return v, nil
		}).
		Trusts("B").
		Finalize()
	require.NoError(t, err)

	b, err := NewType("B").WithRegistry(r).Finalize()
	require.NoError(t, err)

	d, err := NewType("D", b).WithRegistry(r).Finalize()
	require.NoError(t, err)

	stranger, err := NewType("Stranger").WithRegistry(r).Finalize()
	require.NoError(t, err)

	in, err := Construct(c, nil)
	require.NoError(t, err)

	t.Run("declaring type may call its own private method", func(t *testing.T) {
		out, err := CallPrivate(in, c, c, "whisper")
		require.NoError(t, err)
		assert.Equal(t, "classified", out)
	})

	t.Run("trusted type may call and read private state", func(t *testing.T) {
		out, err := CallPrivate(in, b, c, "whisper")
		require.NoError(t, err)
		assert.Equal(t, "classified", out)

		v, err := in.GetPrivate(b, c, "secret")
		require.NoError(t, err)
		assert.Equal(t, "classified", v)
	})

	t.Run("untrusted caller fails with TrustViolation", func(t *testing.T) {
		_, err := CallPrivate(in, stranger, c, "whisper")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTrustViolation))

		_, err = in.GetPrivate(stranger, c, "secret")
		assert.True(t, errors.Is(err, ErrTrustViolation))
	})

	t.Run("trust is not inherited by subtypes of the trusted type", func(t *testing.T) {
		_, err := CallPrivate(in, d, c, "whisper")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTrustViolation))
	})

	t.Run("private methods invisible to public dispatch", func(t *testing.T) {
		_, err := Call(in, "whisper")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoSuchMethod))
	})

	t.Run("missing private method on trusted call", func(t *testing.T) {
		_, err := CallPrivate(in, b, c, "shout")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoSuchMethod))
	})
}
