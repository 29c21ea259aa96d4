package genspec

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidationErrors is a map of field paths to their validation errors.
// It is an alias for [validation.Errors] from ozzo-validation and implements
// the error interface with a JSON-friendly string representation.
type ValidationErrors = validation.Errors

// Configuration errors. These describe a broken type declaration, not bad
// input, and are returned while a registry is being populated.
var (
	ErrMalformedType    = errors.New("malformed type expression")
	ErrMalformedPattern = errors.New("malformed field pattern")
	ErrDuplicateType    = errors.New("duplicate type name")
	ErrDuplicateField   = errors.New("duplicate field declaration")
	ErrUnknownType      = errors.New("unknown type name")
	ErrRegistrySealed   = errors.New("registry is sealed")
)

// Validation errors, matched with [errors.Is].
var (
	ErrMissingRequiredField     = errors.New("missing required field")
	ErrInvalidFieldType         = errors.New("invalid field type")
	ErrUnknownField             = errors.New("unknown field")
	ErrReferenceCycle           = errors.New("reference cycle")
	ErrConflictingSpecification = errors.New("conflicting specification")
	ErrUnsupportedValue         = errors.New("unsupported value")
)

// MissingRequiredFieldError reports a required field that was never set.
type MissingRequiredFieldError struct {
	Entity string
	Field  string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("required field %q does not exist in %s", e.Field, e.Entity)
}

func (e *MissingRequiredFieldError) Unwrap() error { return ErrMissingRequiredField }

// InvalidFieldTypeError reports a stored value that does not conform to the
// type expression declared for its field.
type InvalidFieldTypeError struct {
	Entity   string
	Field    string
	Expected string
	Actual   Value
}

func (e *InvalidFieldTypeError) Error() string {
	return fmt.Sprintf("invalid value for %q in %s, expected a %s but got %v", e.Field, e.Entity, e.Expected, e.Actual)
}

func (e *InvalidFieldTypeError) Unwrap() error { return ErrInvalidFieldType }

// UnknownFieldError reports a stored field that matches no declared rule.
type UnknownFieldError struct {
	Entity string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("field %q is not allowed in %s", e.Field, e.Entity)
}

func (e *UnknownFieldError) Unwrap() error { return ErrUnknownField }

// PathError locates a failure inside a nested entity, e.g.
// "paths./dataset.get.parameters[0]".
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *PathError) Unwrap() error { return e.Err }

// ConflictingSpecificationError reports two mutually exclusive ways of
// specifying the same property. It is raised when the second one is assigned.
type ConflictingSpecificationError struct {
	Field     string
	Existing  string
	Attempted string
}

func (e *ConflictingSpecificationError) Error() string {
	return fmt.Sprintf("%s already specified by %s, cannot also specify it by %s; choose only one", e.Field, e.Existing, e.Attempted)
}

func (e *ConflictingSpecificationError) Unwrap() error { return ErrConflictingSpecification }
