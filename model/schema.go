package model

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"gorm.io/modelcheck/utils"
)

// Schema columns of a model type
type Schema struct {
	Name           string
	Table          string
	ModelType      reflect.Type
	Fields         []*Field
	FieldsByName   map[string]*Field
	FieldsByDBName map[string]*Field
	PrimaryField   *Field
}

// Field model column
type Field struct {
	Name        string
	DBName      string
	FieldType   reflect.Type
	Index       []int
	PrimaryKey  bool
	TagSettings map[string]string
	Schema      *Schema
}

func (schema Schema) String() string {
	if schema.ModelType.Name() == "" {
		return fmt.Sprintf("%s(%s)", schema.Name, schema.Table)
	}
	return fmt.Sprintf("%s.%s", schema.ModelType.PkgPath(), schema.ModelType.Name())
}

// LookUpField find field by column name or field name
func (schema Schema) LookUpField(name string) *Field {
	if field, ok := schema.FieldsByDBName[name]; ok {
		return field
	}
	if field, ok := schema.FieldsByName[name]; ok {
		return field
	}
	return nil
}

// PrimaryColumn primary key column, `id` when the model has no primary field
func (schema Schema) PrimaryColumn() string {
	if schema.PrimaryField != nil {
		return schema.PrimaryField.DBName
	}
	return "id"
}

// Parse get model's schema, schemas are cached in cacheStore
func Parse(dest interface{}, cacheStore *sync.Map, namer Namer) (*Schema, error) {
	modelType := modelType(dest)
	if modelType == nil {
		return nil, fmt.Errorf("%w: %+v", ErrUnsupportedModel, dest)
	}

	if v, ok := cacheStore.Load(modelType); ok {
		return v.(*Schema), nil
	}

	schema := &Schema{
		Name:           modelType.Name(),
		ModelType:      modelType,
		FieldsByName:   map[string]*Field{},
		FieldsByDBName: map[string]*Field{},
	}

	if tabler, ok := reflect.New(modelType).Interface().(Tabler); ok {
		schema.Table = tabler.TableName()
	} else {
		schema.Table = namer.TableName(modelType.Name())
	}
	if !utils.IsValidIdentifier(schema.Table) {
		return nil, fmt.Errorf("%w: %q of %v", ErrInvalidTable, schema.Table, modelType)
	}

	schema.parseFields(modelType, nil, namer)

	if field, ok := schema.FieldsByName["ID"]; ok && schema.PrimaryField == nil {
		field.PrimaryKey = true
		schema.PrimaryField = field
	}

	v, _ := cacheStore.LoadOrStore(modelType, schema)
	return v.(*Schema), nil
}

func (schema *Schema) parseFields(typ reflect.Type, index []int, namer Namer) {
	for i := 0; i < typ.NumField(); i++ {
		fieldStruct := typ.Field(i)
		fieldIndex := append(append([]int(nil), index...), i)
		tagSettings := ParseTagSetting(fieldStruct.Tag.Get("gorm"), ";")

		if _, ignored := tagSettings["-"]; ignored {
			continue
		}

		if fieldStruct.Anonymous {
			embedded := fieldStruct.Type
			if embedded.Kind() == reflect.Ptr {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct && embedded != baseType && !isColumnType(embedded) {
				schema.parseFields(embedded, fieldIndex, namer)
				continue
			}
		}

		if fieldStruct.PkgPath != "" || !isColumnType(fieldStruct.Type) {
			continue
		}

		field := &Field{
			Name:        fieldStruct.Name,
			DBName:      tagSettings["COLUMN"],
			FieldType:   fieldStruct.Type,
			Index:       fieldIndex,
			TagSettings: tagSettings,
			Schema:      schema,
		}
		if field.DBName == "" {
			field.DBName = namer.ColumnName(field.Name)
		}

		if _, ok := tagSettings["PRIMARYKEY"]; ok && schema.PrimaryField == nil {
			field.PrimaryKey = true
			schema.PrimaryField = field
		}

		if _, ok := schema.FieldsByDBName[field.DBName]; ok {
			continue
		}

		schema.Fields = append(schema.Fields, field)
		schema.FieldsByName[field.Name] = field
		schema.FieldsByDBName[field.DBName] = field
	}
}

var (
	baseType    = reflect.TypeOf(Base{})
	timeType    = reflect.TypeOf(time.Time{})
	scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()
	valuerType  = reflect.TypeOf((*driver.Valuer)(nil)).Elem()
)

// isColumnType check the field type maps to a single column, structs and slices of models are relations
func isColumnType(typ reflect.Type) bool {
	if reflect.PtrTo(typ).Implements(scannerType) || typ.Implements(valuerType) {
		return true
	}

	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	switch typ.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String:
		return true
	case reflect.Slice:
		return typ.Elem().Kind() == reflect.Uint8
	case reflect.Struct:
		return typ == timeType || reflect.PtrTo(typ).Implements(scannerType)
	}
	return false
}

// ParseTagSetting parse `gorm:"column:name;primaryKey"` style tags, keys are upper cased
func ParseTagSetting(str string, sep string) map[string]string {
	settings := map[string]string{}
	if str == "" {
		return settings
	}
	if str == "-" {
		settings["-"] = "-"
		return settings
	}

	for _, part := range strings.Split(str, sep) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		values := strings.SplitN(part, ":", 2)
		key := strings.ToUpper(strings.TrimSpace(values[0]))
		if len(values) == 2 {
			settings[key] = strings.TrimSpace(values[1])
		} else {
			settings[key] = key
		}
	}
	return settings
}
