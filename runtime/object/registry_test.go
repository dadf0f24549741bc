package object

import (
	"errors"
	"testing"
)

func TestRegistry(t *testing.T) {
	t.Run("register and lookup", func(t *testing.T) {
		r := NewRegistry()
		declare(t, r, "Post")

		tm, ok := r.Lookup("Post")
		if !ok {
			t.Fatal("type should exist")
		}
		if tm.Name() != "Post" {
			t.Errorf("expected Post, got %s", tm.Name())
		}
	})

	t.Run("duplicate registration", func(t *testing.T) {
		r := NewRegistry()
		declare(t, r, "Post")

		_, err := NewType("Post").WithRegistry(r).Finalize()
		if err == nil {
			t.Fatal("expected error for duplicate registration")
		}
		if !errors.Is(err, ErrDuplicateType) {
			t.Errorf("expected ErrDuplicateType, got %v", err)
		}
	})

	t.Run("names are sorted", func(t *testing.T) {
		r := NewRegistry()
		for _, name := range []string{"User", "Post", "Comment"} {
			declare(t, r, name)
		}

		names := r.Names()
		want := []string{"Comment", "Post", "User"}
		if len(names) != len(want) {
			t.Fatalf("expected %d names, got %d", len(want), len(names))
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i], names[i])
			}
		}
	})

	t.Run("reset clears the registry", func(t *testing.T) {
		r := NewRegistry()
		declare(t, r, "Ephemeral")
		r.Reset()
		if r.Len() != 0 {
			t.Errorf("expected empty registry, got %d types", r.Len())
		}
	})

	t.Run("default registry is process wide", func(t *testing.T) {
		DefaultRegistry().Reset()
		defer DefaultRegistry().Reset()

		_, err := NewType("GlobalThing").Finalize()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := DefaultRegistry().Lookup("GlobalThing"); !ok {
			t.Error("Finalize should publish to the default registry")
		}
	})
}

func TestRegistryConcurrentReads(t *testing.T) {
	r := NewRegistry()
	parent := declare(t, r, "Base")
	declare(t, r, "Derived", parent)

	// Finalized types are immutable; concurrent readers need no
	// synchronization beyond the registry's own lock.
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 200; j++ {
				tm, ok := r.Lookup("Derived")
				if !ok {
					t.Error("lookup failed")
					return
				}
				_ = tm.MRONames()
				_ = tm.Fields(false)
				_ = tm.PublicMethods(false)
				_ = r.Types()
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
