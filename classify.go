package modelcheck

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/modelcheck/model"
	"gorm.io/modelcheck/relation"
	"gorm.io/modelcheck/utils"
)

var relationType = reflect.TypeOf((*model.Relation)(nil)).Elem()

// Classification result of classifying a method, Relation is only set when Applicable
type Classification struct {
	Applicable bool
	Relation   model.Relation
	Kind       relation.Kind
	Target     reflect.Type
}

// classify invokes method when it could return a relation, errors are *InvalidRelationError
func (v *Validator) classify(ctx context.Context, class reflect.Type, method Method) (Classification, error) {
	if method.Required > 0 {
		return Classification{}, nil
	}

	if v.ignored(method) {
		return Classification{}, nil
	}

	if !mayReturnRelation(method.Func.Type) {
		return Classification{}, nil
	}

	value, err := v.invoke(ctx, class, method)
	if err != nil {
		return Classification{}, &InvalidRelationError{Class: utils.TypeName(class), Method: method.Name, Err: err}
	}

	if !value.IsValid() || isNil(value) {
		return Classification{}, nil
	}

	rel, ok := value.Interface().(model.Relation)
	if !ok || isNilRelation(rel) {
		return Classification{}, nil
	}

	classification, err := describe(rel)
	if err != nil {
		return Classification{}, &InvalidRelationError{Class: utils.TypeName(class), Method: method.Name, Err: err}
	}
	return classification, nil
}

// describe reads kind and target of rel, panics are returned as error
func describe(rel model.Relation) (classification Classification, err error) {
	defer func() {
		if r := recover(); r != nil {
			classification, err = Classification{}, recovered(r)
		}
	}()

	classification = Classification{Applicable: true, Relation: rel, Kind: rel.Kind(), Target: rel.Target()}
	if classification.Target == nil {
		return Classification{}, model.ErrMissingTarget
	}
	return classification, nil
}

func (v *Validator) ignored(method Method) bool {
	for prefix, methods := range v.IgnoredMethodsPerNamespacePrefix {
		if utils.HasPathPrefix(method.Namespace, prefix) &&
			(utils.Contains(methods, Wildcard) || utils.Contains(methods, method.Name)) {
			return true
		}
	}
	return false
}

// mayReturnRelation checks declared results, an interface result could hold a relation at runtime
func mayReturnRelation(typ reflect.Type) bool {
	switch typ.NumOut() {
	case 1:
	case 2:
		if typ.Out(1) != errorType {
			return false
		}
	default:
		return false
	}

	out := typ.Out(0)
	return out.Kind() == reflect.Interface || out.Implements(relationType)
}

// invoke calls method on a fresh instance of class, panics are returned as error
func (v *Validator) invoke(ctx context.Context, class reflect.Type, method Method) (result reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()

	instance, err := v.Runtime.New(class)
	if err != nil {
		return reflect.Value{}, err
	}
	if instance.Kind() != reflect.Ptr {
		instance = instance.Addr()
	}

	args := []reflect.Value{instance}
	if method.TakesContext() {
		args = append(args, reflect.ValueOf(ctx))
	}

	results := method.Func.Func.Call(args)
	if len(results) == 2 && !results[1].IsNil() {
		return reflect.Value{}, results[1].Interface().(error)
	}
	return results[0], nil
}

func recovered(r interface{}) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}

func isNil(value reflect.Value) bool {
	switch value.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return value.IsNil()
	}
	return false
}

// isNilRelation typed nil pointer stored in an interface result
func isNilRelation(rel model.Relation) bool {
	value := reflect.ValueOf(rel)
	return value.Kind() == reflect.Ptr && value.IsNil()
}
