package model_test

import (
	"context"
	"database/sql"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"gorm.io/modelcheck/internal/brokenmodels"
	"gorm.io/modelcheck/internal/migrations"
	"gorm.io/modelcheck/internal/testmodels"
	"gorm.io/modelcheck/logger"
	"gorm.io/modelcheck/model"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.MigrateAll(context.Background(), db, logger.Discard))
	return db
}

func exec(t *testing.T, db *sql.DB, query string, args ...interface{}) {
	t.Helper()
	_, err := db.Exec(query, args...)
	require.NoError(t, err, query)
}

func TestRuntimeSQLite(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	exec(t, db, "INSERT INTO parent_models (id, name) VALUES (1, 'parent'), (2, 'other')")
	exec(t, db, "INSERT INTO child_models (id, parent_model_id, name) VALUES (1, 1, 'a'), (2, 1, 'b'), (3, 2, 'c')")
	exec(t, db, "INSERT INTO post_models (id, title) VALUES (1, 'post')")
	exec(t, db, "INSERT INTO comment_models (id, body, commentable_id, commentable_type) VALUES (1, 'x', 1, 'post_models'), (2, 'y', 1, 'other')")
	exec(t, db, "INSERT INTO role_models (id, name) VALUES (1, 'admin'), (2, 'editor')")
	exec(t, db, "INSERT INTO user_models (id, name) VALUES (1, 'jinzhu')")
	exec(t, db, "INSERT INTO role_model_user_model (role_model_id, user_model_id) VALUES (1, 1), (2, 1)")

	rt := model.Open(db, &model.Config{Logger: logger.Discard})

	t.Run("has many", func(t *testing.T) {
		parent := newModel[testmodels.ParentModel](t, rt)
		parent.ID = 1

		result, err := parent.Children().(model.Relation).FetchAll(ctx)
		require.NoError(t, err)
		records := result.(*model.Records)
		require.Equal(t, 2, records.Len())
		assert.Equal(t, "a", records.At(0).(*testmodels.ChildModel).Name)
		assert.Equal(t, "b", records.At(1).(*testmodels.ChildModel).Name)
	})

	t.Run("belongs to", func(t *testing.T) {
		child := newModel[testmodels.ChildModel](t, rt)
		child.ID = 3

		result, err := child.Parent().FetchAll(ctx)
		require.NoError(t, err)
		records := result.(*model.Records)
		require.Equal(t, 1, records.Len())
		assert.Equal(t, "other", records.At(0).(*testmodels.ParentModel).Name)
	})

	t.Run("morph", func(t *testing.T) {
		post := newModel[testmodels.PostModel](t, rt)
		post.ID = 1

		result, err := post.Comments().FetchAll(ctx)
		require.NoError(t, err)
		comments := result.(*model.Records)
		require.Equal(t, 1, comments.Len())
		comment := comments.At(0).(*testmodels.CommentModel)
		assert.Equal(t, "post_models", comment.CommentableType)

		result, err = comment.Commentable().FetchAll(ctx)
		require.NoError(t, err)
		posts := result.(*model.Records)
		require.Equal(t, 1, posts.Len())
		assert.Equal(t, "post", posts.At(0).(*testmodels.PostModel).Title)
	})

	t.Run("belongs to many", func(t *testing.T) {
		user := newModel[testmodels.UserModel](t, rt)
		user.ID = 1

		result, err := user.Roles().FetchAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, result.(model.Collection).Len())
	})

	t.Run("empty", func(t *testing.T) {
		result, err := newModel[testmodels.ParentModel](t, rt).Children().(model.Relation).FetchAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, result.(model.Collection).Len())
		assert.Equal(t, reflect.TypeOf(testmodels.ChildModel{}), result.(model.Collection).Class())
	})

	t.Run("wrong key", func(t *testing.T) {
		_, err := newModel[brokenmodels.WrongKeyModel](t, rt).Parent().FetchAll(ctx)
		assert.ErrorContains(t, err, "missing_id")
	})

	t.Run("missing table", func(t *testing.T) {
		_, err := newModel[brokenmodels.ThroughModel](t, rt).Children().FetchAll(ctx)
		assert.ErrorContains(t, err, "through_model_id")
	})
}

func TestRuntimeNew(t *testing.T) {
	rt := model.Open(nil, nil)
	assert.Equal(t, logger.Default, rt.Logger)
	assert.Equal(t, model.SQLite{}, rt.Dialect)

	value, err := rt.New(reflect.TypeOf(testmodels.ParentModel{}))
	require.NoError(t, err)
	parent := value.Interface().(*testmodels.ParentModel)
	assert.Equal(t, rt, parent.ModelBase().Runtime())

	value, err = rt.New(reflect.TypeOf(&struct{ Name string }{}))
	require.NoError(t, err, "non models are allocated but not bound")
	assert.Equal(t, reflect.Ptr, value.Kind())

	_, err = rt.New(reflect.TypeOf(1))
	assert.ErrorIs(t, err, model.ErrUnsupportedModel)
}

func TestBaseBind(t *testing.T) {
	rt := model.Open(nil, nil)
	child := &testmodels.ChildModel{}
	other := &testmodels.ChildModel{}

	assert.ErrorIs(t, child.ModelBase().Bind(rt, *child), model.ErrUnaddressable)
	assert.ErrorIs(t, child.ModelBase().Bind(rt, other), model.ErrUnsupportedModel)
	assert.ErrorIs(t, child.ModelBase().Bind(rt, &struct{}{}), model.ErrUnsupportedModel)
	assert.Nil(t, child.ModelBase().Runtime())

	require.NoError(t, child.ModelBase().Bind(rt, child))
	assert.Equal(t, rt, child.ModelBase().Runtime())
	assert.Equal(t, reflect.TypeOf(testmodels.ChildModel{}), child.Parent().Owner())
}
