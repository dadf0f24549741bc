package object

import (
	"fmt"

	"go.uber.org/zap"
)

// TypeMetaobject is the process-wide descriptor for a declared type. It is
// assembled through a Builder and frozen by Finalize; after finalization it
// is immutable and safe for unsynchronized concurrent reads. The registry
// is the sole long-lived owner; a metaobject lives until process exit.
type TypeMetaobject struct {
	name    string
	parents []*TypeMetaobject
	fields  *FieldTable

	publicMethods  map[string]*MethodDescriptor
	privateMethods map[string]*MethodDescriptor

	// trusted holds the names of types this type has granted private
	// access to. Grants are one-directional and never inherited by
	// subtypes of the trusted type.
	trusted map[string]bool

	// mro is the cached C3 linearization, self first. Computed exactly
	// once at finalization, before any instance exists.
	mro []*TypeMetaobject

	classVars *ClassVars

	buildHook    BuildHook
	tweakHook    TweakHook
	teardownHook TeardownHook

	log *zap.Logger
}

// Name returns the type's name
func (t *TypeMetaobject) Name() string {
	return t.name
}

// Parents returns a copy of the direct parent list in declared order
func (t *TypeMetaobject) Parents() []*TypeMetaobject {
	return append([]*TypeMetaobject(nil), t.parents...)
}

// IsA reports whether other appears anywhere in t's dispatch order
func (t *TypeMetaobject) IsA(other *TypeMetaobject) bool {
	for _, u := range t.mro {
		if u == other {
			return true
		}
	}
	return false
}

// Trusts reports whether t has granted private access to the named type.
// The grant table is fixed at finalization, so this needs no locking.
func (t *TypeMetaobject) Trusts(caller *TypeMetaobject) bool {
	if caller == nil {
		return false
	}
	if caller == t {
		return true
	}
	return t.trusted[caller.name]
}

// hasTeardown reports whether any level of the dispatch order declares a
// teardown hook
func (t *TypeMetaobject) hasTeardown() bool {
	for _, level := range t.mro {
		if level.teardownHook != nil {
			return true
		}
	}
	return false
}

// Builder assembles a TypeMetaobject. Declaration problems are collected
// and reported together by Finalize, so a declaration reads as a single
// fluent chain.
type Builder struct {
	t        *TypeMetaobject
	registry *Registry
	errors   []error
}

// NewType starts building a type with the given name and direct parents,
// in declared order. Parents must already be finalized metaobjects.
func NewType(name string, parents ...*TypeMetaobject) *Builder {
	return &Builder{
		t: &TypeMetaobject{
			name:           name,
			parents:        parents,
			fields:         NewFieldTable(),
			publicMethods:  make(map[string]*MethodDescriptor),
			privateMethods: make(map[string]*MethodDescriptor),
			trusted:        make(map[string]bool),
			classVars:      newClassVars(),
			log:            zap.NewNop(),
		},
		registry: DefaultRegistry(),
	}
}

// WithRegistry makes Finalize publish the type into the given registry
// instead of the process-wide default.
func (b *Builder) WithRegistry(r *Registry) *Builder {
	b.registry = r
	return b
}

// WithLogger attaches a logger used for construction and dispatch traces.
// The default is a nop logger.
func (b *Builder) WithLogger(log *zap.Logger) *Builder {
	if log != nil {
		b.t.log = log
	}
	return b
}

// Field declares a field on the type
func (b *Builder) Field(fd FieldDescriptor) *Builder {
	fd.DeclaredBy = b.t.name
	if err := b.t.fields.Declare(fd); err != nil {
		b.errors = append(b.errors, err)
	}
	return b
}

// Method declares a public method
func (b *Builder) Method(name string, fn MethodFunc) *Builder {
	return b.method(name, Public, fn)
}

// PrivateMethod declares a private method. Private methods are reachable
// only through qualified dispatch gated by the trust table; they never
// participate in the public dispatch-order search.
func (b *Builder) PrivateMethod(name string, fn MethodFunc) *Builder {
	return b.method(name, Private, fn)
}

func (b *Builder) method(name string, vis Visibility, fn MethodFunc) *Builder {
	md := &MethodDescriptor{
		Name:       name,
		Visibility: vis,
		DeclaredBy: b.t.name,
		Fn:         fn,
	}
	table := b.t.publicMethods
	if vis == Private {
		table = b.t.privateMethods
	}
	if _, exists := table[name]; exists {
		b.errors = append(b.errors, fmt.Errorf("type %s: method %q is already declared", b.t.name, name))
		return b
	}
	table[name] = md
	return b
}

// Trusts grants the named type access to this type's private methods and
// fields. The grant is declared by name so mutually-trusting types can be
// built in either order; it is checked against the caller's type identity
// at call time.
func (b *Builder) Trusts(typeName string) *Builder {
	b.t.trusted[typeName] = true
	return b
}

// ClassVar declares a type-shared variable visible only through this type
func (b *Builder) ClassVar(name string, initial any) *Builder {
	b.t.classVars.declare(name, initial, false)
	return b
}

// SharedClassVar declares a type-shared variable with hierarchy-wide
// visibility: subtypes resolve it through the dispatch order to this one
// slot, so all instances of the whole hierarchy observe the same value.
func (b *Builder) SharedClassVar(name string, initial any) *Builder {
	b.t.classVars.declare(name, initial, true)
	return b
}

// OnBuild installs a custom per-level initialization hook, replacing the
// generated default for this type's fields.
func (b *Builder) OnBuild(h BuildHook) *Builder {
	b.t.buildHook = h
	return b
}

// OnTweak installs the post-construction hook for this level
func (b *Builder) OnTweak(h TweakHook) *Builder {
	b.t.tweakHook = h
	return b
}

// OnTeardown installs the best-effort reclamation hook for this level
func (b *Builder) OnTeardown(h TeardownHook) *Builder {
	b.t.teardownHook = h
	return b
}

// Finalize computes the linearization, synthesizes accessors for public
// fields, freezes the metaobject, and publishes it to the registry. After
// a successful Finalize the type is immutable. On any failure the type is
// not published and no instance of it can ever be constructed.
func (b *Builder) Finalize() (*TypeMetaobject, error) {
	if len(b.errors) > 0 {
		return nil, fmt.Errorf("type %s has %d declaration error(s): %w", b.t.name, len(b.errors), b.errors[0])
	}

	mro, err := linearize(b.t)
	if err != nil {
		return nil, err
	}
	b.t.mro = mro

	// Accessors are synthesized at finalization so the method table is
	// complete before the type is published. An explicitly declared
	// method of the same name wins over the synthesized accessor.
	for _, fd := range b.t.fields.ordered {
		if fd.Visibility != Public {
			continue
		}
		if _, exists := b.t.publicMethods[fd.Name]; exists {
			continue
		}
		b.t.publicMethods[fd.Name] = accessorFor(fd, b.t)
	}

	if b.registry != nil {
		if err := b.registry.Register(b.t); err != nil {
			return nil, err
		}
	}

	b.t.log.Debug("type finalized",
		zap.String("type", b.t.name),
		zap.Int("mro_depth", len(b.t.mro)),
		zap.Int("fields", b.t.fields.Len()),
	)

	return b.t, nil
}
