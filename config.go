package modelcheck

import (
	"reflect"

	"gorm.io/modelcheck/logger"
	"gorm.io/modelcheck/model"
)

// DefaultModelPath searched when Config.ModelSearchPaths is empty. Search paths are package import
// path prefixes, so the default only lists a package imported as `models`; modules set their own,
// e.g. `github.com/x/app/models`
const DefaultModelPath = "models"

// Wildcard matches every method of a class or namespace
const Wildcard = "*"

// Config modelcheck config
type Config struct {
	// ModelSearchPaths package paths listed by ClassLister when no class is given, sub packages included
	ModelSearchPaths []string
	// AllowedBaseTypes a class must be a subtype of one of them, defaults to model.Model
	AllowedBaseTypes []reflect.Type
	// AllowNonModelClasses skip classes that are not models instead of failing them
	AllowNonModelClasses bool
	// RequiredBaseTypePerClass overrides AllowedBaseTypes for a class name
	RequiredBaseTypePerClass map[string]reflect.Type
	// IgnoredMethodsPerNamespacePrefix methods declared in a namespace starting with the key are never invoked,
	// Wildcard ignores all methods
	IgnoredMethodsPerNamespacePrefix map[string][]string
	// BackRelationValidationEnabled check every relation is answered by its target
	BackRelationValidationEnabled bool
	// BackRelationTypeValidationEnabled check the kind of the back relation as well
	BackRelationTypeValidationEnabled bool
	// SkipBackRelationMethodsPerClass methods of a class name exempted from back relation checks
	SkipBackRelationMethodsPerClass map[string][]string

	// ClassLister lists classes of ModelSearchPaths, model.DefaultTypeRegistry by default
	ClassLister ClassLister
	// Reflector lists methods of classes
	Reflector Reflector
	// Runtime creates model instances, relations of a runtime without connection always fail
	Runtime Runtime
	// Logger
	Logger logger.Interface

	connPool model.ConnPool
}

// Option modelcheck option
type Option interface {
	Apply(*Config)
}

// Apply update config to new config
func (c *Config) Apply(config *Config) {
	if config != c {
		*config = *c
	}
}

type optionFunc func(*Config)

func (fn optionFunc) Apply(config *Config) {
	fn(config)
}

// DefaultConfig config used by New before applying options
func DefaultConfig() *Config {
	return &Config{
		ModelSearchPaths: []string{DefaultModelPath},
		AllowedBaseTypes: []reflect.Type{modelType},
		IgnoredMethodsPerNamespacePrefix: map[string][]string{
			modelNamespace: {Wildcard},
		},
		BackRelationValidationEnabled:     true,
		BackRelationTypeValidationEnabled: true,
	}
}

// WithModelSearchPaths set the package paths searched for classes.
func WithModelSearchPaths(paths ...string) Option {
	return optionFunc(func(c *Config) {
		c.ModelSearchPaths = paths
	})
}

// WithAllowedBaseTypes set allowed base types, values could be reflect.Type, struct values or pointers to interfaces.
func WithAllowedBaseTypes(types ...interface{}) Option {
	return optionFunc(func(c *Config) {
		c.AllowedBaseTypes = c.AllowedBaseTypes[:0:0]
		for _, typ := range types {
			c.AllowedBaseTypes = append(c.AllowedBaseTypes, BaseType(typ))
		}
	})
}

// WithAllowNonModelClasses skip non model classes.
func WithAllowNonModelClasses() Option {
	return optionFunc(func(c *Config) {
		c.AllowNonModelClasses = true
	})
}

// WithRequiredBaseType require class to be a subtype of base.
func WithRequiredBaseType(class string, base interface{}) Option {
	return optionFunc(func(c *Config) {
		required := make(map[string]reflect.Type, len(c.RequiredBaseTypePerClass)+1)
		for k, v := range c.RequiredBaseTypePerClass {
			required[k] = v
		}
		required[class] = BaseType(base)
		c.RequiredBaseTypePerClass = required
	})
}

// WithIgnoredMethods never invoke methods declared in namespaces starting with prefix.
func WithIgnoredMethods(prefix string, methods ...string) Option {
	return optionFunc(func(c *Config) {
		c.IgnoredMethodsPerNamespacePrefix = withMethods(c.IgnoredMethodsPerNamespacePrefix, prefix, methods)
	})
}

// WithSkipBackRelationMethods exempt methods of class from back relation checks.
func WithSkipBackRelationMethods(class string, methods ...string) Option {
	return optionFunc(func(c *Config) {
		c.SkipBackRelationMethodsPerClass = withMethods(c.SkipBackRelationMethodsPerClass, class, methods)
	})
}

// WithoutBackRelationValidation disable back relation checks.
func WithoutBackRelationValidation() Option {
	return optionFunc(func(c *Config) {
		c.BackRelationValidationEnabled = false
	})
}

// WithoutBackRelationTypeValidation only check back relations exist.
func WithoutBackRelationTypeValidation() Option {
	return optionFunc(func(c *Config) {
		c.BackRelationTypeValidationEnabled = false
	})
}

// WithClassLister set class lister.
func WithClassLister(lister ClassLister) Option {
	return optionFunc(func(c *Config) {
		c.ClassLister = lister
	})
}

// WithReflector set reflector.
func WithReflector(reflector Reflector) Option {
	return optionFunc(func(c *Config) {
		c.Reflector = reflector
	})
}

// WithRuntime set runtime.
func WithRuntime(runtime Runtime) Option {
	return optionFunc(func(c *Config) {
		c.Runtime = runtime
	})
}

// WithConnPool use a model.Runtime querying conn, unless Runtime is set.
func WithConnPool(conn model.ConnPool) Option {
	return optionFunc(func(c *Config) {
		c.connPool = conn
	})
}

// WithLogger set logger.
func WithLogger(logger logger.Interface) Option {
	return optionFunc(func(c *Config) {
		c.Logger = logger
	})
}

func withMethods(m map[string][]string, key string, methods []string) map[string][]string {
	result := make(map[string][]string, len(m)+1)
	for k, v := range m {
		result[k] = v
	}
	result[key] = append(append([]string(nil), result[key]...), methods...)
	return result
}

// BaseType returns the type of value, value could be a reflect.Type, a struct value or a pointer to an interface,
// e.g. (*model.Model)(nil)
func BaseType(value interface{}) reflect.Type {
	if typ, ok := value.(reflect.Type); ok {
		return typ
	}
	typ := reflect.TypeOf(value)
	for typ != nil && typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	return typ
}
