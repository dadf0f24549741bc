package object

import (
	"runtime"

	"go.uber.org/zap"
)

// Construct builds a fully-initialized instance of t from a bag of named
// values. It is the generated default constructor: named values match
// public field names, and the two pipeline phases run to completion before
// the instance is returned. The first failure in either phase aborts the
// whole construction; no partially-constructed instance escapes.
func Construct(t *TypeMetaobject, args Named) (*Instance, error) {
	in := RawInstantiate(t)
	if err := RunPipeline(in, args); err != nil {
		return nil, err
	}
	return in, nil
}

// RunPipeline executes the two construction phases over the reverse of the
// dispatch order (most-base level first, most-derived last):
//
//  1. per-level initialization: the level's BUILD hook if declared,
//     otherwise the generated default that claims named arguments and
//     evaluates field defaults;
//  2. post-construction: each level's TWEAK hook, with read/write access
//     to every field of the whole instance.
//
// Both phases are synchronous; there is no suspension and no cancellation.
// Custom top-level constructors call this directly after RawInstantiate,
// having adapted positional or otherwise-shaped arguments into the named
// map themselves.
func RunPipeline(in *Instance, args Named) error {
	t := in.typ
	if args == nil {
		args = Named{}
	}

	// Phase 1: base-to-derived initialization
	for i := len(t.mro) - 1; i >= 0; i-- {
		level := t.mro[i]
		if level.buildHook != nil {
			if err := level.buildHook(in, args); err != nil {
				t.log.Debug("construction aborted in build hook",
					zap.String("type", t.name), zap.String("level", level.name), zap.Error(err))
				return err
			}
			continue
		}
		if err := defaultBuild(in, level, args); err != nil {
			t.log.Debug("construction aborted",
				zap.String("type", t.name), zap.String("level", level.name), zap.Error(err))
			return err
		}
	}

	// Phase 2: base-to-derived post-construction
	for i := len(t.mro) - 1; i >= 0; i-- {
		level := t.mro[i]
		if level.tweakHook == nil {
			continue
		}
		if err := level.tweakHook(in); err != nil {
			t.log.Debug("construction aborted in tweak hook",
				zap.String("type", t.name), zap.String("level", level.name), zap.Error(err))
			return err
		}
	}

	scheduleTeardown(in)

	t.log.Debug("instance constructed",
		zap.String("type", t.name), zap.String("id", in.id.String()))
	return nil
}

// defaultBuild is the generated initialization hook for one level. Fields
// are populated in declaration order so a default expression may read
// fields of the same level declared before it. Public fields claim the
// named argument of their name; private fields rely on their default. A
// mandatory field with neither fails the construction.
func defaultBuild(in *Instance, level *TypeMetaobject, args Named) error {
	return level.fields.each(func(fd *FieldDescriptor) error {
		if fd.Visibility == Public {
			if v, ok := args[fd.Name]; ok {
				return in.SetField(level, fd.Name, v)
			}
		}
		if fd.Default != nil {
			v, err := fd.Default(in)
			if err != nil {
				return err
			}
			return in.SetField(level, fd.Name, v)
		}
		if fd.Mandatory {
			return NewMissingMandatoryFieldError(level.name, fd.Name)
		}
		// Optional field without argument or default keeps its nil slot
		return nil
	})
}

// scheduleTeardown arranges for the best-effort teardown notification when
// the instance becomes unreachable. The hook may run on any goroutine at
// any time after reclamation, or not at all; nothing may depend on it.
func scheduleTeardown(in *Instance) {
	if !in.typ.hasTeardown() {
		return
	}
	runtime.SetFinalizer(in, func(dead *Instance) {
		defaultTeardown().Enqueue(dead)
	})
}
