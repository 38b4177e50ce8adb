package modelcheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/modelcheck/logger"
	"gorm.io/modelcheck/relation"
)

func TestVerifyBackRelations(t *testing.T) {
	ctx := context.Background()
	edges := func(es ...Edge) *Registry {
		registry := NewRegistry()
		for _, e := range es {
			registry.Append(e)
		}
		return registry
	}

	t.Run("existential", func(t *testing.T) {
		v := New(&RecordingSink{}, WithLogger(logger.Discard))
		errs := v.verifyBackRelations(ctx, edges(
			Edge{Source: "A", Method: "B", Kind: relation.BelongsTo, Target: "B"},
			Edge{Source: "B", Method: "Morph", Kind: relation.MorphTo, Target: "A"},
			Edge{Source: "B", Method: "As", Kind: relation.HasMany, Target: "A"},
		))
		require.Len(t, errs, 1, "B.Morph has no morph back relation")
		assert.ErrorIs(t, errs[0], ErrIncompatibleBackRelation)
	})

	t.Run("unknown kind", func(t *testing.T) {
		sink := &RecordingSink{}
		v := New(sink, WithLogger(logger.Discard))
		errs := v.verifyBackRelations(ctx, edges(
			Edge{Source: "A", Method: "Cs", Kind: relation.HasManyThrough, Target: "C"},
			Edge{Source: "C", Method: "A", Kind: relation.HasOneThrough, Target: "A"},
			Edge{Source: "C", Method: "Weird", Kind: relation.Kind("weird"), Target: "A"},
		))
		require.Len(t, errs, 3)
		for _, err := range errs {
			assert.ErrorIs(t, err, ErrUnknownRelationKind)
		}
		assert.EqualError(t, errs[0], `A.Cs() has relation kind "has_many_through" without known back relation kinds`)
		assert.Len(t, sink.Failures(), 3)

		v = New(&RecordingSink{}, WithLogger(logger.Discard), WithoutBackRelationTypeValidation())
		assert.Empty(t, v.verifyBackRelations(ctx, edges(
			Edge{Source: "A", Method: "Cs", Kind: relation.HasManyThrough, Target: "C"},
			Edge{Source: "C", Method: "A", Kind: relation.HasOneThrough, Target: "A"},
		)))
	})

	t.Run("missing", func(t *testing.T) {
		v := New(&RecordingSink{}, WithLogger(logger.Discard))
		errs := v.verifyBackRelations(ctx, edges(
			Edge{Source: "A", Method: "B", Kind: relation.BelongsTo, Target: "B"},
			Edge{Source: "A", Method: "C", Kind: relation.HasOne, Target: "C"},
			Edge{Source: "C", Method: "Other", Kind: relation.BelongsTo, Target: "D"},
		))
		require.Len(t, errs, 3, "one failure does not stop the others")
		assert.EqualError(t, errs[0], "A.B() BelongsTo B, but B has no relation back to A")
		assert.EqualError(t, errs[1], "A.C() HasOne C, but C has no relation back to A")
		assert.EqualError(t, errs[2], "C.Other() BelongsTo D, but D has no relation back to C")
	})

	t.Run("skip", func(t *testing.T) {
		registry := edges(
			Edge{Source: "A", Method: "B", Kind: relation.BelongsTo, Target: "B"},
			Edge{Source: "A", Method: "C", Kind: relation.HasOne, Target: "C"},
			Edge{Source: "C", Method: "Other", Kind: relation.BelongsTo, Target: "D"},
		)

		v := New(&RecordingSink{}, WithLogger(logger.Discard), WithSkipBackRelationMethods("A", Wildcard))
		errs := v.verifyBackRelations(ctx, registry)
		require.Len(t, errs, 1)
		assert.Equal(t, "C", errs[0].(*MissingBackRelationError).Edge.Source)

		v = New(&RecordingSink{}, WithLogger(logger.Discard),
			WithSkipBackRelationMethods("A", "C"), WithSkipBackRelationMethods("C", "Other"))
		errs = v.verifyBackRelations(ctx, registry)
		require.Len(t, errs, 1)
		assert.Equal(t, "B", errs[0].(*MissingBackRelationError).Edge.Method)
	})

	t.Run("self relation", func(t *testing.T) {
		v := New(StrictSink{}, WithLogger(logger.Discard))
		assert.NotPanics(t, func() {
			errs := v.verifyBackRelations(ctx, edges(
				Edge{Source: "Tree", Method: "Parent", Kind: relation.BelongsTo, Target: "Tree"},
				Edge{Source: "Tree", Method: "Children", Kind: relation.HasMany, Target: "Tree"},
			))
			assert.Empty(t, errs)
		})
	})
}
