// Package config loads modelcheck options from yaml files and MODELCHECK_* environment variables
package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"reflect"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"gorm.io/modelcheck"
	"gorm.io/modelcheck/logger"
	"gorm.io/modelcheck/model"
)

// ErrUnknownType type name is not registered in the type registry
var ErrUnknownType = errors.New("unknown type")

// File modelcheck settings, type names are fully qualified, e.g. `gorm.io/modelcheck/model.Model`
type File struct {
	ModelSearchPaths                 []string            `yaml:"model_search_paths" env:"MODELCHECK_MODEL_SEARCH_PATHS" env-separator:","`
	AllowedBaseTypes                 []string            `yaml:"allowed_base_types" env:"MODELCHECK_ALLOWED_BASE_TYPES" env-separator:","`
	AllowNonModelClasses             bool                `yaml:"allow_non_model_classes" env:"MODELCHECK_ALLOW_NON_MODEL_CLASSES"`
	RequiredBaseTypePerClass         map[string]string   `yaml:"required_base_type_per_class"`
	IgnoredMethodsPerNamespacePrefix map[string][]string `yaml:"ignored_methods_per_namespace_prefix"`
	DisableBackRelationValidation    bool                `yaml:"disable_back_relation_validation" env:"MODELCHECK_DISABLE_BACK_RELATION_VALIDATION"`
	DisableBackRelationTypeCheck     bool                `yaml:"disable_back_relation_type_check" env:"MODELCHECK_DISABLE_BACK_RELATION_TYPE_CHECK"`
	SkipBackRelationMethodsPerClass  map[string][]string `yaml:"skip_back_relation_methods_per_class"`
	Database                         Database            `yaml:"database"`
	Log                              Log                 `yaml:"log"`
}

// Database dialect relation queries are rendered for
type Database struct {
	Dialect       string `yaml:"dialect" env:"MODELCHECK_DB_DIALECT" env-default:"sqlite"`
	TablePrefix   string `yaml:"table_prefix" env:"MODELCHECK_DB_TABLE_PREFIX"`
	SingularTable bool   `yaml:"singular_table" env:"MODELCHECK_DB_SINGULAR_TABLE"`
}

// Log logger settings, Driver is one of default, zap, zerolog, logrus, slog
type Log struct {
	Driver        string        `yaml:"driver" env:"MODELCHECK_LOG_DRIVER" env-default:"default"`
	Level         string        `yaml:"level" env:"MODELCHECK_LOG_LEVEL" env-default:"warn"`
	SlowThreshold time.Duration `yaml:"slow_threshold" env:"MODELCHECK_LOG_SLOW_THRESHOLD" env-default:"200ms"`
	Colorful      bool          `yaml:"colorful" env:"MODELCHECK_LOG_COLORFUL"`
}

// Load read the yaml file at path, environment variables override it
func Load(path string) (*File, error) {
	file := &File{}
	if err := cleanenv.ReadConfig(path, file); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return file, nil
}

// Parse decode yaml data, environment variables override it
func Parse(data []byte) (*File, error) {
	file := &File{}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cleanenv.ReadEnv(file); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return file, nil
}

// Options convert settings to validator options, type names are resolved through registry,
// model.DefaultTypeRegistry when nil
func (f *File) Options(registry *model.TypeRegistry) ([]modelcheck.Option, error) {
	if registry == nil {
		registry = model.DefaultTypeRegistry
	}

	lookup := func(name string) (reflect.Type, error) {
		if typ, ok := registry.Lookup(name); ok {
			return typ, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}

	var opts []modelcheck.Option
	if len(f.ModelSearchPaths) > 0 {
		opts = append(opts, modelcheck.WithModelSearchPaths(f.ModelSearchPaths...))
	}

	if len(f.AllowedBaseTypes) > 0 {
		types := make([]interface{}, 0, len(f.AllowedBaseTypes))
		for _, name := range f.AllowedBaseTypes {
			typ, err := lookup(name)
			if err != nil {
				return nil, err
			}
			types = append(types, typ)
		}
		opts = append(opts, modelcheck.WithAllowedBaseTypes(types...))
	}

	if f.AllowNonModelClasses {
		opts = append(opts, modelcheck.WithAllowNonModelClasses())
	}

	for class, name := range f.RequiredBaseTypePerClass {
		typ, err := lookup(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, modelcheck.WithRequiredBaseType(class, typ))
	}

	for prefix, methods := range f.IgnoredMethodsPerNamespacePrefix {
		opts = append(opts, modelcheck.WithIgnoredMethods(prefix, methods...))
	}

	for class, methods := range f.SkipBackRelationMethodsPerClass {
		opts = append(opts, modelcheck.WithSkipBackRelationMethods(class, methods...))
	}

	if f.DisableBackRelationValidation {
		opts = append(opts, modelcheck.WithoutBackRelationValidation())
	}

	if f.DisableBackRelationTypeCheck {
		opts = append(opts, modelcheck.WithoutBackRelationTypeValidation())
	}

	l, err := f.Log.Logger()
	if err != nil {
		return nil, err
	}
	return append(opts, modelcheck.WithLogger(l)), nil
}

// Runtime open a model runtime on conn with the configured dialect and naming strategy
func (f *File) Runtime(conn model.ConnPool) (*model.Runtime, error) {
	dialect, ok := model.DialectByName(f.Database.Dialect)
	if !ok {
		return nil, fmt.Errorf("unsupported dialect %q", f.Database.Dialect)
	}

	l, err := f.Log.Logger()
	if err != nil {
		return nil, err
	}

	return model.Open(conn, &model.Config{
		Dialect:        dialect,
		NamingStrategy: model.NamingStrategy{TablePrefix: f.Database.TablePrefix, SingularTable: f.Database.SingularTable},
		Logger:         l,
	}), nil
}

// Logger build the configured logger
func (l Log) Logger() (logger.Interface, error) {
	level, err := logger.ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}

	config := logger.Config{
		SlowThreshold: l.SlowThreshold,
		Colorful:      l.Colorful,
		LogLevel:      level,
	}

	switch l.Driver {
	case "", "default":
		return logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), config), nil
	case "zap":
		return logger.NewZapLoggerWithConfig(config)
	case "zerolog":
		return logger.NewConsoleZerologLogger(config), nil
	case "logrus":
		return logger.NewLogrusLogger(logrus.StandardLogger(), config), nil
	case "slog":
		return logger.NewSlogLogger(slog.Default(), config), nil
	}
	return nil, fmt.Errorf("unknown log driver %q", l.Driver)
}
