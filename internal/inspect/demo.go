package inspect

import (
	"fmt"

	"github.com/opal-lang/opal/runtime/object"
)

// RegisterDemo populates a registry with a small example hierarchy so the
// inspector tooling has something to show outside a real embedding.
func RegisterDemo(r *object.Registry) error {
	employee, err := object.NewType("Employee").
		WithRegistry(r).
		Field(object.FieldDescriptor{
			Name:       "salary",
			Visibility: object.Public,
			Mandatory:  true,
			Constraint: &object.Constraint{
				Description: "non-negative number",
				Check: func(v any) bool {
					n, ok := v.(int)
					return ok && n >= 0
				},
			},
		}).
		Method("yearly_income", func(self *object.Instance, _ ...any) (any, error) {
			v, _ := self.Get("salary")
			return v, nil
		}).
		Finalize()
	if err != nil {
		return fmt.Errorf("registering Employee: %w", err)
	}

	_, err = object.NewType("Programmer", employee).
		WithRegistry(r).
		Field(object.FieldDescriptor{Name: "known_languages", Visibility: object.Public, Kind: object.Sequence}).
		Field(object.FieldDescriptor{Name: "favorite_editor", Visibility: object.Public, Mutable: true}).
		Finalize()
	if err != nil {
		return fmt.Errorf("registering Programmer: %w", err)
	}

	cook, err := object.NewType("Cook").
		WithRegistry(r).
		Field(object.FieldDescriptor{Name: "utensils", Visibility: object.Public, Kind: object.Sequence}).
		Field(object.FieldDescriptor{Name: "cookbooks", Visibility: object.Public, Kind: object.Sequence}).
		Method("cook", func(self *object.Instance, args ...any) (any, error) {
			return fmt.Sprintf("cooking %v", args), nil
		}).
		PrivateMethod("sharpen_knives", func(*object.Instance, ...any) (any, error) {
			return nil, nil
		}).
		Finalize()
	if err != nil {
		return fmt.Errorf("registering Cook: %w", err)
	}

	_, err = object.NewType("Baker", cook).
		WithRegistry(r).
		Method("cook", func(self *object.Instance, args ...any) (any, error) {
			return fmt.Sprintf("baking %v", args), nil
		}).
		Finalize()
	if err != nil {
		return fmt.Errorf("registering Baker: %w", err)
	}

	return nil
}
