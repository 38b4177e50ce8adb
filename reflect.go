package modelcheck

import (
	"context"
	"reflect"
	"runtime"

	"gorm.io/modelcheck/utils"
)

// ClassLister lists the concrete classes declared in a package path and its sub packages,
// *model.TypeRegistry implements it
type ClassLister interface {
	List(path string) ([]reflect.Type, error)
}

// ClassResolver optional interface of ClassLister resolving class names
type ClassResolver interface {
	Lookup(name string) (reflect.Type, bool)
}

// Runtime creates fresh instances of classes, *model.Runtime implements it
type Runtime interface {
	New(class reflect.Type) (reflect.Value, error)
}

// Reflector lists the instance methods of a class
type Reflector interface {
	Methods(class reflect.Type) []Method
}

// Method instance method of a class
type Method struct {
	Name string
	// Declaring type declaring the method, an embedded type for promoted methods
	Declaring reflect.Type
	// Namespace package path of Declaring
	Namespace string
	// Required number of parameters callers must pass, a leading context.Context is injected
	Required int
	Func     reflect.Method
}

// TakesContext the first parameter after the receiver is a context.Context
func (m Method) TakesContext() bool {
	typ := m.Func.Type
	return typ.NumIn() > 1 && typ.In(1) == contextType
}

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

const autogenerated = "<autogenerated>"

// MethodReflector lists exported methods of *class, promoted methods included, ordered by name
type MethodReflector struct{}

func (MethodReflector) Methods(class reflect.Type) []Method {
	class = utils.Indirect(class)
	if class == nil || class.Kind() != reflect.Struct {
		return nil
	}

	ptr := reflect.PtrTo(class)
	methods := make([]Method, 0, ptr.NumMethod())
	for i := 0; i < ptr.NumMethod(); i++ {
		m := ptr.Method(i)
		declaring := declaringType(class, m.Name)
		method := Method{
			Name:      m.Name,
			Declaring: declaring,
			Namespace: declaring.PkgPath(),
			Func:      m,
		}
		method.Required = requiredParams(method)
		methods = append(methods, method)
	}
	return methods
}

func requiredParams(m Method) int {
	typ := m.Func.Type
	required := typ.NumIn() - 1
	if typ.IsVariadic() {
		required--
	}
	if m.TakesContext() && required > 0 {
		required--
	}
	return required
}

// declaringType walks embedded fields breadth first, like method promotion does
func declaringType(class reflect.Type, name string) reflect.Type {
	level := []reflect.Type{class}
	visited := map[reflect.Type]bool{}

	for len(level) > 0 {
		var next []reflect.Type
		for _, typ := range level {
			if visited[typ] {
				continue
			}
			visited[typ] = true

			if typ.Kind() == reflect.Interface {
				if _, ok := typ.MethodByName(name); ok {
					return typ
				}
				continue
			}
			if declares(typ, name) {
				return typ
			}

			for i := 0; i < typ.NumField(); i++ {
				field := typ.Field(i)
				if !field.Anonymous {
					continue
				}
				if embedded := utils.Indirect(field.Type); embedded.Kind() == reflect.Struct || embedded.Kind() == reflect.Interface {
					next = append(next, embedded)
				}
			}
		}
		level = next
	}
	return class
}

// declares the method is declared on typ itself instead of promoted from an embedded field,
// promoted methods and pointer wrappers of value methods are compiler generated
func declares(typ reflect.Type, name string) bool {
	if m, ok := typ.MethodByName(name); ok && !generated(m) {
		return true
	}
	if m, ok := reflect.PtrTo(typ).MethodByName(name); ok && !generated(m) {
		return true
	}
	return false
}

func generated(m reflect.Method) bool {
	pc := m.Func.Pointer()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return false
	}
	file, _ := fn.FileLine(pc)
	return file == autogenerated
}
