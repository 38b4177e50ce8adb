package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/modelcheck"
	"gorm.io/modelcheck/config"
	"gorm.io/modelcheck/internal/testmodels"
	"gorm.io/modelcheck/logger"
	"gorm.io/modelcheck/model"
)

const settings = `
model_search_paths:
  - gorm.io/modelcheck/internal/testmodels
allowed_base_types:
  - gorm.io/modelcheck/model.Model
required_base_type_per_class:
  gorm.io/modelcheck/internal/testmodels.ChildModel: gorm.io/modelcheck/internal/testmodels.AbstractModel
ignored_methods_per_namespace_prefix:
  gorm.io/modelcheck/internal/testmodels:
    - Label
skip_back_relation_methods_per_class:
  gorm.io/modelcheck/internal/testmodels.PostModel:
    - "*"
disable_back_relation_type_check: true
database:
  dialect: postgres
  table_prefix: app_
log:
  level: info
  slow_threshold: 1s
`

func TestParse(t *testing.T) {
	file, err := config.Parse([]byte(settings))
	require.NoError(t, err)

	assert.Equal(t, []string{"gorm.io/modelcheck/internal/testmodels"}, file.ModelSearchPaths)
	assert.Equal(t, []string{"gorm.io/modelcheck/model.Model"}, file.AllowedBaseTypes)
	assert.False(t, file.AllowNonModelClasses)
	assert.False(t, file.DisableBackRelationValidation)
	assert.True(t, file.DisableBackRelationTypeCheck)
	assert.Equal(t, "postgres", file.Database.Dialect)
	assert.Equal(t, "app_", file.Database.TablePrefix)
	assert.Equal(t, "info", file.Log.Level)
	assert.Equal(t, "default", file.Log.Driver)
	assert.Equal(t, time.Second, file.Log.SlowThreshold)
}

func TestParseDefaults(t *testing.T) {
	file, err := config.Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Empty(t, file.ModelSearchPaths)
	assert.Equal(t, "sqlite", file.Database.Dialect)
	assert.Equal(t, "warn", file.Log.Level)
	assert.Equal(t, 200*time.Millisecond, file.Log.SlowThreshold)
}

func TestParseEnvironment(t *testing.T) {
	t.Setenv("MODELCHECK_MODEL_SEARCH_PATHS", "app/models,app/admin")
	t.Setenv("MODELCHECK_LOG_LEVEL", "error")
	t.Setenv("MODELCHECK_DISABLE_BACK_RELATION_VALIDATION", "true")

	file, err := config.Parse([]byte(settings))
	require.NoError(t, err)

	assert.Equal(t, []string{"app/models", "app/admin"}, file.ModelSearchPaths)
	assert.Equal(t, "error", file.Log.Level)
	assert.True(t, file.DisableBackRelationValidation)
}

func TestParseInvalid(t *testing.T) {
	_, err := config.Parse([]byte("model_search_paths: ["))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modelcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(settings), 0o600))

	file, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", file.Database.Dialect)
	assert.Equal(t, map[string][]string{"gorm.io/modelcheck/internal/testmodels": {"Label"}}, file.IgnoredMethodsPerNamespacePrefix)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	file, err := config.Parse([]byte(settings))
	require.NoError(t, err)

	opts, err := file.Options(nil)
	require.NoError(t, err)

	v := modelcheck.New(modelcheck.StrictSink{}, opts...)
	assert.Equal(t, []string{"gorm.io/modelcheck/internal/testmodels"}, v.ModelSearchPaths)
	assert.Equal(t, []reflect.Type{reflect.TypeOf((*model.Model)(nil)).Elem()}, v.AllowedBaseTypes)
	assert.Equal(t, reflect.TypeOf(testmodels.AbstractModel{}), v.RequiredBaseTypePerClass["gorm.io/modelcheck/internal/testmodels.ChildModel"])
	assert.Equal(t, []string{"Label"}, v.IgnoredMethodsPerNamespacePrefix["gorm.io/modelcheck/internal/testmodels"])
	assert.Equal(t, []string{"*"}, v.IgnoredMethodsPerNamespacePrefix["gorm.io/modelcheck/model"])
	assert.Equal(t, []string{"*"}, v.SkipBackRelationMethodsPerClass["gorm.io/modelcheck/internal/testmodels.PostModel"])
	assert.True(t, v.BackRelationValidationEnabled)
	assert.False(t, v.BackRelationTypeValidationEnabled)
	assert.NotNil(t, v.Logger)
}

func TestOptionsUnknownType(t *testing.T) {
	file := &config.File{AllowedBaseTypes: []string{"example.com/app.Missing"}}
	_, err := file.Options(model.NewTypeRegistry())
	assert.True(t, errors.Is(err, config.ErrUnknownType), err)

	file = &config.File{RequiredBaseTypePerClass: map[string]string{"app.User": "example.com/app.Missing"}}
	_, err = file.Options(nil)
	assert.ErrorIs(t, err, config.ErrUnknownType)
}

func TestRuntime(t *testing.T) {
	file, err := config.Parse([]byte(settings))
	require.NoError(t, err)

	rt, err := file.Runtime(nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres", rt.Dialect.Name())
	assert.Equal(t, model.NamingStrategy{TablePrefix: "app_"}, rt.NamingStrategy)

	file.Database.Dialect = "oracle"
	_, err = file.Runtime(nil)
	assert.EqualError(t, err, `unsupported dialect "oracle"`)
}

func TestLogger(t *testing.T) {
	for _, driver := range []string{"", "default", "zap", "zerolog", "logrus", "slog"} {
		l, err := config.Log{Driver: driver, Level: "silent"}.Logger()
		require.NoError(t, err, driver)
		assert.NotNil(t, l, driver)
	}

	_, err := config.Log{Driver: "syslog", Level: "warn"}.Logger()
	assert.EqualError(t, err, `unknown log driver "syslog"`)

	_, err = config.Log{Level: "verbose"}.Logger()
	assert.EqualError(t, err, `unknown log level "verbose"`)

	l, err := config.Log{Level: "info"}.Logger()
	require.NoError(t, err)
	assert.Implements(t, (*logger.Interface)(nil), l)
}
