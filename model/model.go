package model

import (
	"reflect"

	"gorm.io/modelcheck/relation"
)

// Model is satisfied by every type embedding Base
type Model interface {
	ModelBase() *Base
}

// Tabler customize table name
type Tabler interface {
	TableName() string
}

// Base embed it into a struct to declare a model
//
//	type User struct {
//	  model.Base
//	  ID   uint
//	  Name string
//	}
//
//	func (u *User) Pets() *model.Relationship {
//	  return u.HasMany(&Pet{})
//	}
type Base struct {
	runtime *Runtime
	owner   reflect.Value
}

// ModelBase returns the embedded base
func (b *Base) ModelBase() *Base {
	return b
}

// Bind attach the model value to a runtime, owner must be a pointer to the struct embedding b
func (b *Base) Bind(runtime *Runtime, owner interface{}) error {
	value := reflect.ValueOf(owner)
	if value.Kind() != reflect.Ptr || value.IsNil() || value.Elem().Kind() != reflect.Struct {
		return ErrUnaddressable
	}
	if m, ok := owner.(Model); !ok || m.ModelBase() != b {
		return ErrUnsupportedModel
	}

	b.runtime = runtime
	b.owner = value
	return nil
}

// Runtime returns the runtime the model is bound to, nil if unbound
func (b *Base) Runtime() *Runtime {
	return b.runtime
}

func (b *Base) ownerType() reflect.Type {
	if b.owner.IsValid() {
		return b.owner.Type().Elem()
	}
	return nil
}

func (b *Base) newRelationship(kind relation.Kind, target interface{}, opts []RelationOption) *Relationship {
	rel := &Relationship{
		kind:   kind,
		base:   b,
		owner:  b.ownerType(),
		target: modelType(target),
	}
	for _, opt := range opts {
		opt(rel)
	}
	return rel
}

// BelongsTo the owner holds the foreign key of target
func (b *Base) BelongsTo(target interface{}, opts ...RelationOption) *Relationship {
	return b.newRelationship(relation.BelongsTo, target, opts)
}

// HasOne target holds the foreign key of the owner, at most one record
func (b *Base) HasOne(target interface{}, opts ...RelationOption) *Relationship {
	return b.newRelationship(relation.HasOne, target, opts)
}

// HasMany target holds the foreign key of the owner
func (b *Base) HasMany(target interface{}, opts ...RelationOption) *Relationship {
	return b.newRelationship(relation.HasMany, target, opts)
}

// MorphTo the owner holds `<name>_id` and `<name>_type` columns pointing at one of types.
// Target is resolved once per instance, a fresh instance resolves to the first of types, so only
// that type is checked for a back relation; exempt the method with
// modelcheck.WithSkipBackRelationMethods when several types morph to the owner
func (b *Base) MorphTo(name string, types ...interface{}) *Relationship {
	rel := b.newRelationship(relation.MorphTo, nil, nil)
	rel.morphName = name
	for _, t := range types {
		if typ := modelType(t); typ != nil {
			rel.morphTypes = append(rel.morphTypes, typ)
		}
	}
	rel.target = rel.resolveMorphTarget()
	return rel
}

// MorphOne target holds `<name>_id` and `<name>_type` columns pointing at the owner, at most one record
func (b *Base) MorphOne(target interface{}, name string, opts ...RelationOption) *Relationship {
	rel := b.newRelationship(relation.MorphOne, target, opts)
	rel.morphName = name
	return rel
}

// MorphMany target holds `<name>_id` and `<name>_type` columns pointing at the owner
func (b *Base) MorphMany(target interface{}, name string, opts ...RelationOption) *Relationship {
	rel := b.newRelationship(relation.MorphMany, target, opts)
	rel.morphName = name
	return rel
}

// BelongsToMany owner and target are joined by a pivot table
func (b *Base) BelongsToMany(target interface{}, opts ...RelationOption) *Relationship {
	return b.newRelationship(relation.BelongsToMany, target, opts)
}

// HasOneThrough target is reached through an intermediate model, at most one record. Like
// HasManyThrough it has no known inverse kinds
func (b *Base) HasOneThrough(target, through interface{}, opts ...RelationOption) *Relationship {
	rel := b.newRelationship(relation.HasOneThrough, target, nil)
	rel.through = modelType(through)
	for _, opt := range opts {
		opt(rel)
	}
	return rel
}

// HasManyThrough target is reached through an intermediate model. Through relations have no known
// inverse kinds, so back relation type checks fail for them unless skipped
func (b *Base) HasManyThrough(target, through interface{}, opts ...RelationOption) *Relationship {
	rel := b.newRelationship(relation.HasManyThrough, target, nil)
	rel.through = modelType(through)
	for _, opt := range opts {
		opt(rel)
	}
	return rel
}

// modelType returns the struct type of value, value could be a struct, a pointer to struct or a reflect.Type
func modelType(value interface{}) reflect.Type {
	var typ reflect.Type
	switch v := value.(type) {
	case nil:
		return nil
	case reflect.Type:
		typ = v
	default:
		typ = reflect.TypeOf(value)
	}

	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}
	return typ
}
