// Package object implements the Opal runtime object system: type
// metaobjects with encapsulated fields, C3-linearized multiple inheritance,
// two-phase construction, trust-gated private dispatch, and a read-only
// introspection surface over the process-wide type registry.
package object

import "fmt"

// Visibility controls who may read a field or call a method.
type Visibility int

const (
	// Private restricts access to the declaring type and its trusted types
	Private Visibility = iota
	// Public allows access from anywhere and synthesizes an accessor method
	Public
)

// String returns the string representation of the visibility
func (v Visibility) String() string {
	switch v {
	case Private:
		return "private"
	case Public:
		return "public"
	default:
		return "unknown"
	}
}

// ParseVisibility converts a string to a Visibility
func ParseVisibility(s string) (Visibility, error) {
	switch s {
	case "private":
		return Private, nil
	case "public":
		return Public, nil
	default:
		return Private, fmt.Errorf("unknown visibility: %s", s)
	}
}

// StructuralKind describes the shape of the value a field holds.
// It is descriptive metadata for introspection; storage is not specialized.
type StructuralKind int

const (
	// Scalar holds a single value
	Scalar StructuralKind = iota
	// Sequence holds an ordered collection
	Sequence
	// Mapping holds a keyed collection
	Mapping
	// Invocable holds a callable value
	Invocable
)

// String returns the string representation of the structural kind
func (k StructuralKind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	case Invocable:
		return "invocable"
	default:
		return "unknown"
	}
}

// Named is a bag of named initialization values handed to construction.
type Named map[string]any

// DefaultFunc computes a field's default value at construction time.
// It may read fields of earlier-constructed levels, and fields of its own
// level that were declared before it.
type DefaultFunc func(in *Instance) (any, error)

// MethodFunc is the body of a method. The receiver instance is passed
// explicitly; additional arguments arrive positionally.
type MethodFunc func(self *Instance, args ...any) (any, error)

// BuildHook is a per-level initialization hook. A type that declares one is
// solely responsible for populating its own fields from the named arguments;
// unclaimed arguments are not applied implicitly.
type BuildHook func(self *Instance, args Named) error

// TweakHook is a per-level post-construction hook. It runs after every
// level's initialization with read/write access to the whole instance.
type TweakHook func(self *Instance) error

// TeardownHook is a best-effort reclamation notification. It may run on any
// goroutine at any time, or never; it must not assume any synchronization
// context.
type TeardownHook func(self *Instance)

// Constraint is a predicate a field value must satisfy. Description is used
// in error messages.
type Constraint struct {
	Description string
	Check       func(v any) bool
}

// FieldDescriptor captures the declaration of a single field.
type FieldDescriptor struct {
	Name       string
	Visibility Visibility
	Kind       StructuralKind
	Mandatory  bool
	// Mutable controls the synthesized accessor for public fields:
	// false yields a read-only accessor, true a read-write one.
	Mutable    bool
	Constraint *Constraint
	Default    DefaultFunc
	// DeclaredBy is the name of the declaring type; set at finalization.
	DeclaredBy string
}

// MethodDescriptor captures one entry of a type's method table.
type MethodDescriptor struct {
	Name       string
	Visibility Visibility
	// DeclaredBy is the name of the declaring type
	DeclaredBy string
	// Synthesized marks generated field accessors
	Synthesized bool
	Fn          MethodFunc
}
