// Package inspect exposes the object registry over HTTP as a read-only
// JSON API. Responses are built from introspection values, never from
// references into the live tables, so the endpoint cannot perturb the
// type system.
package inspect

import "github.com/opal-lang/opal/runtime/object"

// TypeSummary is the list-view representation of a registered type
type TypeSummary struct {
	Name        string   `json:"name"`
	Parents     []string `json:"parents"`
	FieldCount  int      `json:"field_count"`
	MethodCount int      `json:"method_count"`
}

// TypeDetail is the full representation of a registered type
type TypeDetail struct {
	Name           string       `json:"name"`
	Parents        []string     `json:"parents"`
	MRO            []string     `json:"mro"`
	Fields         []FieldView  `json:"fields"`
	PublicMethods  []MethodView `json:"public_methods"`
	PrivateMethods []MethodView `json:"private_methods"`
}

// FieldView is the JSON shape of a field descriptor
type FieldView struct {
	Name       string `json:"name"`
	Visibility string `json:"visibility"`
	Kind       string `json:"kind"`
	Mandatory  bool   `json:"mandatory"`
	Mutable    bool   `json:"mutable"`
	Constraint string `json:"constraint,omitempty"`
	HasDefault bool   `json:"has_default"`
	DeclaredBy string `json:"declared_by"`
}

// MethodView is the JSON shape of a method descriptor
type MethodView struct {
	Name        string `json:"name"`
	Visibility  string `json:"visibility"`
	DeclaredBy  string `json:"declared_by"`
	Synthesized bool   `json:"synthesized"`
}

func summarize(t *object.TypeMetaobject) TypeSummary {
	return TypeSummary{
		Name:        t.Name(),
		Parents:     parentNames(t),
		FieldCount:  len(t.Fields(true)),
		MethodCount: len(t.PublicMethods(true)),
	}
}

func detail(t *object.TypeMetaobject) TypeDetail {
	return TypeDetail{
		Name:           t.Name(),
		Parents:        parentNames(t),
		MRO:            t.MRONames(),
		Fields:         fieldViews(t.Fields(false)),
		PublicMethods:  methodViews(t.PublicMethods(false)),
		PrivateMethods: methodViews(t.PrivateMethods()),
	}
}

func parentNames(t *object.TypeMetaobject) []string {
	parents := t.Parents()
	names := make([]string, len(parents))
	for i, p := range parents {
		names[i] = p.Name()
	}
	return names
}

func fieldViews(fields []object.FieldDescriptor) []FieldView {
	out := make([]FieldView, len(fields))
	for i, fd := range fields {
		view := FieldView{
			Name:       fd.Name,
			Visibility: fd.Visibility.String(),
			Kind:       fd.Kind.String(),
			Mandatory:  fd.Mandatory,
			Mutable:    fd.Mutable,
			HasDefault: fd.Default != nil,
			DeclaredBy: fd.DeclaredBy,
		}
		if fd.Constraint != nil {
			view.Constraint = fd.Constraint.Description
		}
		out[i] = view
	}
	return out
}

func methodViews(methods []object.MethodDescriptor) []MethodView {
	out := make([]MethodView, len(methods))
	for i, md := range methods {
		out[i] = MethodView{
			Name:        md.Name,
			Visibility:  md.Visibility.String(),
			DeclaredBy:  md.DeclaredBy,
			Synthesized: md.Synthesized,
		}
	}
	return out
}
