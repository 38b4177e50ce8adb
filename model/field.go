package model

import (
	"database/sql"
	"fmt"
	"reflect"
	"time"

	"github.com/jinzhu/now"
)

// Set assign a scanned database value to the field of model value
func (field *Field) Set(model reflect.Value, value interface{}) (err error) {
	model = reflect.Indirect(model)
	if !model.IsValid() || model.Kind() != reflect.Struct {
		return ErrUnaddressable
	}

	fieldValue := model.FieldByIndex(field.Index)
	if !fieldValue.CanSet() {
		return ErrUnaddressable
	}

	if value == nil {
		fieldValue.Set(reflect.Zero(fieldValue.Type()))
		return nil
	}

	if fieldValue.Kind() == reflect.Ptr {
		if fieldValue.IsNil() {
			fieldValue.Set(reflect.New(fieldValue.Type().Elem()))
		}
		fieldValue = fieldValue.Elem()
	}

	if scanner, ok := fieldValue.Addr().Interface().(sql.Scanner); ok {
		return scanner.Scan(value)
	}

	reflectValue := reflect.ValueOf(value)
	switch {
	case fieldValue.Type() == timeType:
		var t time.Time
		if t, err = toTime(value); err == nil {
			fieldValue.Set(reflect.ValueOf(t))
		}
	case reflectValue.Type().ConvertibleTo(fieldValue.Type()) && convertible(reflectValue.Kind(), fieldValue.Kind()):
		fieldValue.Set(reflectValue.Convert(fieldValue.Type()))
	case fieldValue.Kind() == reflect.String:
		fieldValue.SetString(fmt.Sprint(value))
	case fieldValue.Kind() == reflect.Bool:
		switch v := value.(type) {
		case int64:
			fieldValue.SetBool(v != 0)
		default:
			err = fmt.Errorf("could not convert argument of field %s from %s to %s", field.Name, reflectValue.Type(), fieldValue.Type())
		}
	default:
		err = fmt.Errorf("could not convert argument of field %s from %s to %s", field.Name, reflectValue.Type(), fieldValue.Type())
	}
	return err
}

// convertible avoid numeric to string conversions that reflect allows, e.g. int64(65) => "A"
func convertible(from, to reflect.Kind) bool {
	if to == reflect.String {
		return from == reflect.String || from == reflect.Slice
	}
	return true
}

func toTime(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		return *v, nil
	case string:
		return now.Parse(v)
	case []byte:
		return now.Parse(string(v))
	case int64:
		return time.Unix(v, 0), nil
	}
	return time.Time{}, fmt.Errorf("could not convert %T to time.Time", value)
}
