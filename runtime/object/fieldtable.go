package object

import "fmt"

// FieldTable holds the fields declared directly by one type, in declaration
// order. Declaration order matters: default expressions may read fields of
// the same type that were declared earlier, so their initializers run first.
type FieldTable struct {
	ordered []*FieldDescriptor
	byName  map[string]*FieldDescriptor
}

// NewFieldTable creates an empty field table
func NewFieldTable() *FieldTable {
	return &FieldTable{
		ordered: make([]*FieldDescriptor, 0),
		byName:  make(map[string]*FieldDescriptor),
	}
}

// Declare adds a field to the table. Field names are unique within their
// declaring type; redeclaring one is an error.
func (ft *FieldTable) Declare(fd FieldDescriptor) error {
	if _, exists := ft.byName[fd.Name]; exists {
		return NewDuplicateFieldError(fd.DeclaredBy, fd.Name)
	}
	stored := fd
	ft.ordered = append(ft.ordered, &stored)
	ft.byName[fd.Name] = &stored
	return nil
}

// Get returns the descriptor for a field name
func (ft *FieldTable) Get(name string) (*FieldDescriptor, bool) {
	fd, ok := ft.byName[name]
	return fd, ok
}

// Len returns the number of declared fields
func (ft *FieldTable) Len() int {
	return len(ft.ordered)
}

// All returns copies of the descriptors in declaration order
func (ft *FieldTable) All() []FieldDescriptor {
	out := make([]FieldDescriptor, len(ft.ordered))
	for i, fd := range ft.ordered {
		out[i] = *fd
	}
	return out
}

// each visits descriptors in declaration order without copying
func (ft *FieldTable) each(fn func(*FieldDescriptor) error) error {
	for _, fd := range ft.ordered {
		if err := fn(fd); err != nil {
			return err
		}
	}
	return nil
}

// accessorFor synthesizes the accessor method for a public field. The
// accessor has the field's name: called with no arguments it returns the
// current value; for mutable fields one argument assigns a new value
// (constraint-checked) and returns it.
func accessorFor(fd *FieldDescriptor, declaring *TypeMetaobject) *MethodDescriptor {
	name := fd.Name
	mutable := fd.Mutable
	return &MethodDescriptor{
		Name:        name,
		Visibility:  Public,
		DeclaredBy:  declaring.name,
		Synthesized: true,
		Fn: func(self *Instance, args ...any) (any, error) {
			if len(args) == 0 {
				v, _ := self.slot(declaring.name, name)
				return v, nil
			}
			if !mutable {
				return nil, fmt.Errorf("field %s.%s is read-only", declaring.name, name)
			}
			if err := self.SetField(declaring, name, args[0]); err != nil {
				return nil, err
			}
			return args[0], nil
		},
	}
}
