package modelcheck

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/modelcheck/model"
	"gorm.io/modelcheck/utils"
)

// execute fetches the relation, the result must be a model.Collection, its items are not inspected
func (v *Validator) execute(ctx context.Context, class reflect.Type, method Method, rel model.Relation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &InvalidRelationError{Class: utils.TypeName(class), Method: method.Name, Err: recovered(r)}
		}
	}()

	result, err := rel.FetchAll(ctx)
	if err != nil {
		return &InvalidRelationError{Class: utils.TypeName(class), Method: method.Name, Err: err}
	}

	if _, ok := result.(model.Collection); !ok {
		return &InvalidRelationError{
			Class:  utils.TypeName(class),
			Method: method.Name,
			Err:    fmt.Errorf("%w, was %T", ErrInvalidResultSet, result),
		}
	}
	return nil
}
