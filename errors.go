package modelcheck

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/modelcheck/relation"
)

var (
	// ErrInstanceKind class is not a subtype of its allowed or required base types
	ErrInstanceKind = errors.New("invalid instance kind")
	// ErrInvalidRelation relation method fails or its result is not a collection
	ErrInvalidRelation = errors.New("invalid relation")
	// ErrInvalidResultSet relation result is not a model.Collection
	ErrInvalidResultSet = errors.New("output needs to be a Collection")
	// ErrMissingBackRelation target class has no relation back to the source class
	ErrMissingBackRelation = errors.New("missing back relation")
	// ErrIncompatibleBackRelation back relation kind is not an inverse of the relation kind
	ErrIncompatibleBackRelation = errors.New("incompatible back relation")
	// ErrUnknownRelationKind relation kind has no known inverse kinds
	ErrUnknownRelationKind = errors.New("unknown relation kind")
	// ErrUnknownClass class name could not be resolved
	ErrUnknownClass = errors.New("unknown class")
)

// InstanceKindError class fails its base type check
type InstanceKindError struct {
	Class   string
	Allowed []string
}

func (e *InstanceKindError) Error() string {
	return fmt.Sprintf("%s must be instance of %s", e.Class, strings.Join(e.Allowed, ","))
}

func (e *InstanceKindError) Unwrap() error {
	return ErrInstanceKind
}

// InvalidRelationError relation method of class could not be executed
type InvalidRelationError struct {
	Class  string
	Method string
	Err    error
}

func (e *InvalidRelationError) Error() string {
	return fmt.Sprintf("%s.%s() is invalid: %v", e.Class, e.Method, e.Err)
}

func (e *InvalidRelationError) Unwrap() []error {
	return []error{ErrInvalidRelation, e.Err}
}

// MissingBackRelationError no edge from Edge.Target back to Edge.Source
type MissingBackRelationError struct {
	Edge Edge
}

func (e *MissingBackRelationError) Error() string {
	return fmt.Sprintf("%s.%s() %s %s, but %s has no relation back to %s",
		e.Edge.Source, e.Edge.Method, e.Edge.Kind.Name(), e.Edge.Target, e.Edge.Target, e.Edge.Source)
}

func (e *MissingBackRelationError) Unwrap() error {
	return ErrMissingBackRelation
}

// IncompatibleBackRelationError back relations exist but none has an expected kind
type IncompatibleBackRelationError struct {
	Edge     Edge
	Found    []Edge
	Expected []relation.Kind
}

func (e *IncompatibleBackRelationError) Error() string {
	found := make([]string, 0, len(e.Found))
	for _, edge := range e.Found {
		found = append(found, fmt.Sprintf("%s.%s() %s", edge.Source, edge.Method, edge.Kind.Name()))
	}
	return fmt.Sprintf("%s.%s() %s %s, expects back relation %s, found %s",
		e.Edge.Source, e.Edge.Method, e.Edge.Kind.Name(), e.Edge.Target,
		relation.Join(e.Expected, " or "), strings.Join(found, ", "))
}

func (e *IncompatibleBackRelationError) Unwrap() error {
	return ErrIncompatibleBackRelation
}

// UnknownRelationKindError relation kind of Edge has no inverse kinds to compare with
type UnknownRelationKindError struct {
	Edge Edge
}

func (e *UnknownRelationKindError) Error() string {
	return fmt.Sprintf("%s.%s() has relation kind %q without known back relation kinds", e.Edge.Source, e.Edge.Method, string(e.Edge.Kind))
}

func (e *UnknownRelationKindError) Unwrap() error {
	return ErrUnknownRelationKind
}
