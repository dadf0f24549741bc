package object

import (
	"github.com/google/uuid"
)

// slotKey addresses one field slot. Slots are keyed by declaring type as
// well as field name: a field redeclared by a subtype under the same name
// as an ancestor's occupies its own slot and never aliases the ancestor's.
type slotKey struct {
	typeName string
	field    string
}

// Instance is one constructed object: a reference to its most-derived type
// and a storage slot for every field declared anywhere in the dispatch
// order. Construction of an instance is single-threaded; the object system
// does not synchronize post-construction mutation.
type Instance struct {
	id    uuid.UUID
	typ   *TypeMetaobject
	slots map[slotKey]any
}

// RawInstantiate allocates an empty instance of t: exactly one nil slot per
// field declared by any type in t's dispatch order, nothing initialized.
// It is the low-level primitive custom constructors use before adapting
// their arguments and running the pipeline themselves via RunPipeline.
func RawInstantiate(t *TypeMetaobject) *Instance {
	in := &Instance{
		id:    uuid.New(),
		typ:   t,
		slots: make(map[slotKey]any),
	}
	for _, level := range t.mro {
		for _, fd := range level.fields.ordered {
			in.slots[slotKey{level.name, fd.Name}] = nil
		}
	}
	return in
}

// ID returns the instance's unique identity
func (in *Instance) ID() uuid.UUID {
	return in.id
}

// Type returns the instance's most-derived type
func (in *Instance) Type() *TypeMetaobject {
	return in.typ
}

// slot reads the raw slot of a declaring type, without visibility checks
func (in *Instance) slot(typeName, field string) (any, bool) {
	v, ok := in.slots[slotKey{typeName, field}]
	return v, ok
}

// Get resolves a public field along the dispatch order: the first type that
// declares a public field of that name supplies the slot. Private fields
// are not reachable this way; use GetPrivate.
func (in *Instance) Get(name string) (any, bool) {
	for _, level := range in.typ.mro {
		if fd, ok := level.fields.Get(name); ok && fd.Visibility == Public {
			return in.slot(level.name, name)
		}
	}
	return nil, false
}

// GetPrivate reads a private field of the declaring type. The caller
// identifies itself by its own type metaobject; access requires the caller
// to be the declaring type or to hold a trust grant issued by it.
func (in *Instance) GetPrivate(caller, declaring *TypeMetaobject, name string) (any, error) {
	if !declaring.Trusts(caller) {
		callerName := ""
		if caller != nil {
			callerName = caller.name
		}
		return nil, NewTrustViolationError(declaring.name, callerName, name)
	}
	fd, ok := declaring.fields.Get(name)
	if !ok {
		return nil, NewUnknownNameError(declaring.name, "field", name)
	}
	v, _ := in.slot(declaring.name, fd.Name)
	return v, nil
}

// SetField assigns a field slot of the given declaring type, checking the
// field's constraint immediately. Holding the declaring type's metaobject
// is the write capability; initialization and post-construction hooks use
// this to populate their level's fields (and, in the post-construction
// phase, any other level's).
func (in *Instance) SetField(declaring *TypeMetaobject, name string, value any) error {
	typeName := declaring.name
	level, ok := in.level(typeName)
	if !ok {
		return NewUnknownNameError(typeName, "type in dispatch order", typeName)
	}
	fd, ok := level.fields.Get(name)
	if !ok {
		return NewUnknownNameError(typeName, "field", name)
	}
	if fd.Constraint != nil && !fd.Constraint.Check(value) {
		return NewTypeConstraintViolationError(typeName, name, fd.Constraint.Description, value)
	}
	in.slots[slotKey{typeName, name}] = value
	return nil
}

// level finds the metaobject of the named type within the dispatch order
func (in *Instance) level(typeName string) (*TypeMetaobject, bool) {
	for _, t := range in.typ.mro {
		if t.name == typeName {
			return t, true
		}
	}
	return nil, false
}

// SlotCount returns the number of storage slots the instance carries
func (in *Instance) SlotCount() int {
	return len(in.slots)
}
