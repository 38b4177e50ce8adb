package modelcheck_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/modelcheck"
	"gorm.io/modelcheck/internal/brokenmodels"
	"gorm.io/modelcheck/internal/testmodels"
	"gorm.io/modelcheck/model"
)

type Shadow struct {
	testmodels.ChildModel
}

// Parent shadows the promoted ChildModel.Parent
func (s *Shadow) Parent() *model.Relationship {
	return s.BelongsTo(&testmodels.ParentModel{})
}

func (Shadow) Value() string {
	return "value"
}

func (s *Shadow) Variadic(names ...string) {}

func (s *Shadow) Lookup(ctx context.Context, id int) {}

func (s *Shadow) Options(ctx context.Context, opts ...string) {}

func methodsByName(class reflect.Type) map[string]modelcheck.Method {
	methods := map[string]modelcheck.Method{}
	for _, m := range (modelcheck.MethodReflector{}).Methods(class) {
		methods[m.Name] = m
	}
	return methods
}

func TestMethodReflector(t *testing.T) {
	var (
		baseType   = reflect.TypeOf(model.Base{})
		parentType = reflect.TypeOf(testmodels.ParentModel{})
		shadowType = reflect.TypeOf(Shadow{})
	)

	methods := (modelcheck.MethodReflector{}).Methods(parentType)
	names := make([]string, 0, len(methods))
	for _, m := range methods {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{
		"BelongsTo", "BelongsToMany", "Bind", "Children", "HasMany", "HasManyThrough", "HasOne", "HasOneThrough",
		"Label", "MethodDoesntReturnRelation", "MethodHasInputParams", "ModelBase", "MorphMany", "MorphOne", "MorphTo", "Runtime",
	}, names)

	byName := methodsByName(reflect.PtrTo(parentType))
	assert.Equal(t, parentType, byName["Children"].Declaring)
	assert.Equal(t, "gorm.io/modelcheck/internal/testmodels", byName["Children"].Namespace)
	assert.Equal(t, 0, byName["Children"].Required)
	assert.Equal(t, 1, byName["MethodHasInputParams"].Required)
	assert.Equal(t, baseType, byName["HasMany"].Declaring, "promoted through AbstractModel")
	assert.Equal(t, "gorm.io/modelcheck/model", byName["ModelBase"].Namespace)
	assert.Equal(t, 2, byName["Bind"].Required)
	assert.Equal(t, 1, byName["HasMany"].Required)
	assert.Equal(t, 1, byName["MorphTo"].Required, "types are variadic")

	byName = methodsByName(shadowType)
	assert.Equal(t, shadowType, byName["Parent"].Declaring, "shadowed method")
	assert.Equal(t, shadowType, byName["Value"].Declaring, "value receiver")
	assert.Equal(t, baseType, byName["BelongsTo"].Declaring)
	assert.Equal(t, 0, byName["Variadic"].Required)
	assert.Equal(t, 1, byName["Lookup"].Required)
	assert.True(t, byName["Lookup"].TakesContext())
	assert.Equal(t, 0, byName["Options"].Required)

	byName = methodsByName(reflect.TypeOf(brokenmodels.ResultModel{}))
	assert.Equal(t, 0, byName["Names"].Required)
	assert.True(t, byName["Names"].TakesContext())

	assert.Empty(t, (modelcheck.MethodReflector{}).Methods(reflect.TypeOf(1)))
	assert.Empty(t, (modelcheck.MethodReflector{}).Methods(nil))
}

func TestIsSubtype(t *testing.T) {
	var (
		modelType    = reflect.TypeOf((*model.Model)(nil)).Elem()
		abstractType = reflect.TypeOf(testmodels.AbstractModel{})
		baseType     = reflect.TypeOf(model.Base{})
	)

	assert.True(t, modelcheck.IsSubtype(reflect.TypeOf(testmodels.ParentModel{}), modelType))
	assert.True(t, modelcheck.IsSubtype(reflect.TypeOf(&testmodels.ParentModel{}), abstractType))
	assert.True(t, modelcheck.IsSubtype(reflect.TypeOf(testmodels.ParentModel{}), baseType), "embedded through AbstractModel")
	assert.True(t, modelcheck.IsSubtype(abstractType, abstractType))
	assert.True(t, modelcheck.IsSubtype(reflect.TypeOf(Shadow{}), reflect.TypeOf(testmodels.ChildModel{})))
	assert.False(t, modelcheck.IsSubtype(reflect.TypeOf(testmodels.ChildModel{}), abstractType))
	assert.False(t, modelcheck.IsSubtype(reflect.TypeOf(struct{ Name string }{}), modelType))
	assert.False(t, modelcheck.IsSubtype(nil, modelType))
}

func TestRegistry(t *testing.T) {
	registry := modelcheck.NewRegistry()
	a := modelcheck.Edge{Source: "A", Method: "Bs", Target: "B"}
	b := modelcheck.Edge{Source: "B", Method: "A", Target: "A"}
	c := modelcheck.Edge{Source: "A", Method: "C", Target: "C"}
	registry.Append(a)
	registry.Append(b)
	registry.Append(c)

	assert.Equal(t, 3, registry.Len())
	assert.Equal(t, []string{"A", "B"}, registry.Classes())
	assert.Equal(t, []modelcheck.Edge{a, c}, registry.Edges("A"))
	assert.Equal(t, []modelcheck.Edge{c}, registry.Reverse("A", "C"))
	assert.Empty(t, registry.Reverse("B", "C"))
	assert.Empty(t, registry.Edges("Z"))

	edges := registry.Edges("A")
	edges[0].Method = "changed"
	assert.Equal(t, a, registry.Edges("A")[0], "edges are copied")

	var visited []string
	registry.Each(func(class string, edges []modelcheck.Edge) {
		visited = append(visited, class)
		require.NotEmpty(t, edges)
	})
	assert.Equal(t, []string{"A", "B"}, visited)
}
