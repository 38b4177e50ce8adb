package model_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/modelcheck/internal/testmodels"
	_ "gorm.io/modelcheck/internal/testmodels/notmodels"
	_ "gorm.io/modelcheck/internal/testmodels/submodels"
	"gorm.io/modelcheck/model"
)

func typeNames(types []reflect.Type) []string {
	names := make([]string, 0, len(types))
	for _, typ := range types {
		names = append(names, typ.String())
	}
	return names
}

func TestTypeRegistry(t *testing.T) {
	registry := model.NewTypeRegistry()
	registry.Register(&testmodels.ParentModel{}, reflect.TypeOf(testmodels.ChildModel{}))
	registry.RegisterBase((*model.Model)(nil), testmodels.AbstractModel{})

	typ, ok := registry.Lookup("gorm.io/modelcheck/internal/testmodels.ParentModel")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(testmodels.ParentModel{}), typ)

	typ, ok = registry.Lookup("gorm.io/modelcheck/model.Model")
	require.True(t, ok)
	assert.Equal(t, reflect.Interface, typ.Kind())

	_, ok = registry.Lookup("gorm.io/modelcheck/internal/testmodels.Missing")
	assert.False(t, ok)

	types, err := registry.List("gorm.io/modelcheck/internal/testmodels")
	require.NoError(t, err)
	assert.Equal(t, []string{"testmodels.ChildModel", "testmodels.ParentModel"}, typeNames(types), "base types are never listed")

	types, err = registry.List("gorm.io/modelcheck/internal/test")
	require.NoError(t, err)
	assert.Empty(t, types, "prefix matches whole path segments")

	assert.Panics(t, func() { registry.Register(1) })
	assert.Panics(t, func() { registry.Register(struct{}{}) })
	assert.Panics(t, func() { registry.Register(nil) })
}

func TestDefaultTypeRegistry(t *testing.T) {
	types, err := model.DefaultTypeRegistry.List("gorm.io/modelcheck/internal/testmodels")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"testmodels.ChildModel",
		"testmodels.CommentModel",
		"testmodels.ParentModel",
		"testmodels.PostModel",
		"testmodels.RoleModel",
		"testmodels.UserModel",
		"notmodels.NotModel",
		"submodels.SubModel",
	}, typeNames(types))

	for _, name := range []string{"Model", "Relation", "Collection", "Tabler"} {
		_, ok := model.DefaultTypeRegistry.Lookup("gorm.io/modelcheck/model." + name)
		assert.True(t, ok, name)
	}
	_, ok := model.DefaultTypeRegistry.Lookup("gorm.io/modelcheck/internal/testmodels.AbstractModel")
	assert.True(t, ok)
}
