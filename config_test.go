package modelcheck_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"gorm.io/modelcheck"
	"gorm.io/modelcheck/internal/testmodels"
	"gorm.io/modelcheck/logger"
	"gorm.io/modelcheck/model"
)

func TestDefaultConfig(t *testing.T) {
	v := modelcheck.New(nil)

	assert.Equal(t, []string{modelcheck.DefaultModelPath}, v.ModelSearchPaths)
	assert.Equal(t, []reflect.Type{reflect.TypeOf((*model.Model)(nil)).Elem()}, v.AllowedBaseTypes)
	assert.Equal(t, map[string][]string{"gorm.io/modelcheck/model": {modelcheck.Wildcard}}, v.IgnoredMethodsPerNamespacePrefix)
	assert.True(t, v.BackRelationValidationEnabled)
	assert.True(t, v.BackRelationTypeValidationEnabled)
	assert.False(t, v.AllowNonModelClasses)
	assert.Equal(t, model.DefaultTypeRegistry, v.ClassLister)
	assert.Equal(t, modelcheck.MethodReflector{}, v.Reflector)
	assert.Equal(t, logger.Default, v.Logger)
	assert.IsType(t, &model.Runtime{}, v.Runtime)
}

func TestConfigOption(t *testing.T) {
	registry := model.NewTypeRegistry()
	config := &modelcheck.Config{
		ModelSearchPaths:              []string{"example.com/app/models"},
		BackRelationValidationEnabled: true,
		ClassLister:                   registry,
		Logger:                        logger.Discard,
	}

	v := modelcheck.New(modelcheck.StrictSink{}, config, modelcheck.WithAllowNonModelClasses())
	assert.Equal(t, []string{"example.com/app/models"}, v.ModelSearchPaths)
	assert.Equal(t, []reflect.Type{reflect.TypeOf((*model.Model)(nil)).Elem()}, v.AllowedBaseTypes, "allowed base types default")
	assert.Nil(t, v.IgnoredMethodsPerNamespacePrefix)
	assert.False(t, v.BackRelationTypeValidationEnabled)
	assert.True(t, v.AllowNonModelClasses)
	assert.Equal(t, registry, v.ClassLister)
	assert.False(t, config.AllowNonModelClasses, "config is copied")
}

func TestOptions(t *testing.T) {
	v := modelcheck.New(nil,
		modelcheck.WithIgnoredMethods("example.com/app", "Scope"),
		modelcheck.WithIgnoredMethods("example.com/app", "Query"),
		modelcheck.WithSkipBackRelationMethods("example.com/app.User", modelcheck.Wildcard),
		modelcheck.WithRequiredBaseType("example.com/app.User", testmodels.AbstractModel{}),
		modelcheck.WithAllowedBaseTypes(reflect.TypeOf(testmodels.AbstractModel{}), (*model.Model)(nil)),
		modelcheck.WithoutBackRelationValidation(),
		modelcheck.WithoutBackRelationTypeValidation(),
	)

	assert.Equal(t, []string{"Scope", "Query"}, v.IgnoredMethodsPerNamespacePrefix["example.com/app"])
	assert.Equal(t, []string{modelcheck.Wildcard}, v.IgnoredMethodsPerNamespacePrefix["gorm.io/modelcheck/model"])
	assert.Equal(t, []string{modelcheck.Wildcard}, v.SkipBackRelationMethodsPerClass["example.com/app.User"])
	assert.Equal(t, reflect.TypeOf(testmodels.AbstractModel{}), v.RequiredBaseTypePerClass["example.com/app.User"])
	assert.Equal(t, []reflect.Type{reflect.TypeOf(testmodels.AbstractModel{}), reflect.TypeOf((*model.Model)(nil)).Elem()}, v.AllowedBaseTypes)
	assert.False(t, v.BackRelationValidationEnabled)
	assert.False(t, v.BackRelationTypeValidationEnabled)

	assert.Equal(t, reflect.TypeOf(testmodels.AbstractModel{}), modelcheck.BaseType(&testmodels.AbstractModel{}))
	assert.Nil(t, modelcheck.BaseType(nil))
}
