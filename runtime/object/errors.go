package object

import (
	"fmt"
	"strings"
)

// ErrorCode identifies a class of object-system error
type ErrorCode string

const (
	// CodeInconsistentHierarchy indicates C3 linearization is impossible (OBJ001)
	CodeInconsistentHierarchy ErrorCode = "OBJ001"
	// CodeMissingMandatoryField indicates a mandatory field received no value (OBJ002)
	CodeMissingMandatoryField ErrorCode = "OBJ002"
	// CodeTypeConstraintViolation indicates a field value failed its constraint (OBJ003)
	CodeTypeConstraintViolation ErrorCode = "OBJ003"
	// CodeTrustViolation indicates a private access without trust (OBJ004)
	CodeTrustViolation ErrorCode = "OBJ004"
	// CodeNoSuchMethod indicates a public dispatch miss (OBJ005)
	CodeNoSuchMethod ErrorCode = "OBJ005"
	// CodeDuplicateField indicates a field declared twice in one type (OBJ006)
	CodeDuplicateField ErrorCode = "OBJ006"
	// CodeDuplicateType indicates a type name registered twice (OBJ007)
	CodeDuplicateType ErrorCode = "OBJ007"
	// CodeUnknownName indicates a field, variable, or type that does not exist (OBJ008)
	CodeUnknownName ErrorCode = "OBJ008"
)

// Sentinel errors for errors.Is checks. Each carries only a code; concrete
// errors match a sentinel when their codes are equal.
var (
	ErrInconsistentHierarchy   = &Error{Code: CodeInconsistentHierarchy}
	ErrMissingMandatoryField   = &Error{Code: CodeMissingMandatoryField}
	ErrTypeConstraintViolation = &Error{Code: CodeTypeConstraintViolation}
	ErrTrustViolation          = &Error{Code: CodeTrustViolation}
	ErrNoSuchMethod            = &Error{Code: CodeNoSuchMethod}
	ErrDuplicateField          = &Error{Code: CodeDuplicateField}
	ErrDuplicateType           = &Error{Code: CodeDuplicateType}
	ErrUnknownName             = &Error{Code: CodeUnknownName}
)

// Error is a structured object-system error. All object-system failures
// propagate synchronously to the immediate caller; none are retried
// internally.
type Error struct {
	// Code is the error code (e.g., "OBJ004")
	Code ErrorCode
	// Message is the primary error message
	Message string
	// TypeName is the type involved, if any
	TypeName string
	// Field is the field involved, if any
	Field string
	// Method is the method involved, if any
	Method string
	// Expected describes what was expected (optional)
	Expected string
	// Actual describes what was actually found (optional)
	Actual string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.TypeName != "" {
		fmt.Fprintf(&b, " (type %s", e.TypeName)
		if e.Field != "" {
			fmt.Fprintf(&b, ", field %s", e.Field)
		}
		if e.Method != "" {
			fmt.Fprintf(&b, ", method %s", e.Method)
		}
		b.WriteString(")")
	}
	if e.Expected != "" {
		fmt.Fprintf(&b, "; expected %s", e.Expected)
	}
	if e.Actual != "" {
		fmt.Fprintf(&b, ", got %s", e.Actual)
	}
	return b.String()
}

// Is matches errors by code so errors.Is works against the sentinels
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithExpected sets the expected value for the error
func (e *Error) WithExpected(expected string) *Error {
	e.Expected = expected
	return e
}

// WithActual sets the actual value for the error
func (e *Error) WithActual(actual string) *Error {
	e.Actual = actual
	return e
}

// NewInconsistentHierarchyError creates an error for an unlinearizable
// parent graph. The type is fatal at finalization: it is never published
// and no instance of it can be constructed.
func NewInconsistentHierarchyError(typeName, detail string) *Error {
	return &Error{
		Code:     CodeInconsistentHierarchy,
		Message:  fmt.Sprintf("cannot linearize inheritance hierarchy: %s", detail),
		TypeName: typeName,
	}
}

// NewMissingMandatoryFieldError creates an error for a mandatory field that
// received neither a named argument nor a default value.
func NewMissingMandatoryFieldError(typeName, field string) *Error {
	return &Error{
		Code:     CodeMissingMandatoryField,
		Message:  fmt.Sprintf("mandatory field %q was not initialized", field),
		TypeName: typeName,
		Field:    field,
	}
}

// NewTypeConstraintViolationError creates an error for a field value that
// failed its declared constraint.
func NewTypeConstraintViolationError(typeName, field, constraint string, value any) *Error {
	return &Error{
		Code:     CodeTypeConstraintViolation,
		Message:  fmt.Sprintf("value for field %q violates constraint", field),
		TypeName: typeName,
		Field:    field,
		Expected: constraint,
		Actual:   fmt.Sprintf("%v (%T)", value, value),
	}
}

// NewTrustViolationError creates an error for a private access attempted
// without a matching lexical association or trust grant.
func NewTrustViolationError(declaring, caller, member string) *Error {
	who := "anonymous caller"
	if caller != "" {
		who = fmt.Sprintf("type %s", caller)
	}
	return &Error{
		Code:     CodeTrustViolation,
		Message:  fmt.Sprintf("%s is not trusted by %s to access %q", who, declaring, member),
		TypeName: declaring,
		Method:   member,
	}
}

// NewNoSuchMethodError creates an error for a public dispatch miss.
func NewNoSuchMethodError(typeName, method string) *Error {
	return &Error{
		Code:     CodeNoSuchMethod,
		Message:  fmt.Sprintf("no method %q found in dispatch order of %s", method, typeName),
		TypeName: typeName,
		Method:   method,
	}
}

// NewDuplicateFieldError creates an error for a field declared twice within
// one type.
func NewDuplicateFieldError(typeName, field string) *Error {
	return &Error{
		Code:     CodeDuplicateField,
		Message:  fmt.Sprintf("field %q is already declared", field),
		TypeName: typeName,
		Field:    field,
	}
}

// NewDuplicateTypeError creates an error for a type name that is already
// present in the registry.
func NewDuplicateTypeError(typeName string) *Error {
	return &Error{
		Code:     CodeDuplicateType,
		Message:  fmt.Sprintf("type %s is already registered", typeName),
		TypeName: typeName,
	}
}

// NewUnknownNameError creates an error for a missing field, class variable,
// or type.
func NewUnknownNameError(typeName, kind, name string) *Error {
	return &Error{
		Code:     CodeUnknownName,
		Message:  fmt.Sprintf("unknown %s %q", kind, name),
		TypeName: typeName,
		Field:    name,
	}
}
