package model

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"gorm.io/modelcheck/utils"
)

// TypeRegistry registered model types, looked up by fully qualified name and listed by package path
type TypeRegistry struct {
	mux   sync.RWMutex
	types map[string]registered
}

type registered struct {
	typ    reflect.Type
	listed bool
}

// DefaultTypeRegistry registry used by Register
var DefaultTypeRegistry = NewTypeRegistry()

// NewTypeRegistry initialize an empty registry
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{types: map[string]registered{}}
}

// Register register values into DefaultTypeRegistry
func Register(values ...interface{}) {
	DefaultTypeRegistry.Register(values...)
}

// RegisterBase register values into DefaultTypeRegistry as base types
func RegisterBase(values ...interface{}) {
	DefaultTypeRegistry.RegisterBase(values...)
}

// Register register concrete model types, values could be struct values, pointers or reflect.Type
func (r *TypeRegistry) Register(values ...interface{}) {
	r.register(values, true)
}

// RegisterBase register types that could be looked up by name but are never listed,
// like interfaces, e.g. (*Model)(nil), or abstract structs only meant to be embedded
func (r *TypeRegistry) RegisterBase(values ...interface{}) {
	r.register(values, false)
}

func (r *TypeRegistry) register(values []interface{}, listed bool) {
	r.mux.Lock()
	defer r.mux.Unlock()

	for _, value := range values {
		typ := registrableType(value)
		if typ == nil {
			panic(fmt.Sprintf("modelcheck: can not register %T", value))
		}
		r.types[utils.TypeName(typ)] = registered{typ: typ, listed: listed && typ.Kind() == reflect.Struct}
	}
}

func registrableType(value interface{}) reflect.Type {
	var typ reflect.Type
	switch v := value.(type) {
	case nil:
		return nil
	case reflect.Type:
		typ = v
	default:
		typ = reflect.TypeOf(value)
	}

	typ = utils.Indirect(typ)
	if typ == nil || typ.Name() == "" || (typ.Kind() != reflect.Struct && typ.Kind() != reflect.Interface) {
		return nil
	}
	return typ
}

// Lookup find type by fully qualified name, e.g. `gorm.io/modelcheck/model.Model`
func (r *TypeRegistry) Lookup(name string) (reflect.Type, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	entry, ok := r.types[name]
	return entry.typ, ok
}

// List struct types declared in path or its sub packages, ordered by name
func (r *TypeRegistry) List(path string) ([]reflect.Type, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	names := make([]string, 0, len(r.types))
	for name, entry := range r.types {
		if entry.listed && utils.HasPathPrefix(entry.typ.PkgPath(), path) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	types := make([]reflect.Type, 0, len(names))
	for _, name := range names {
		types = append(types, r.types[name].typ)
	}
	return types, nil
}

func init() {
	RegisterBase((*Model)(nil), (*Relation)(nil), (*Collection)(nil), (*Tabler)(nil))
}
