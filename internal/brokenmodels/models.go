// Package brokenmodels fixture models with misconfigured relations
package brokenmodels

import (
	"context"
	"errors"
	"reflect"

	"gorm.io/modelcheck/internal/testmodels"
	"gorm.io/modelcheck/model"
	"gorm.io/modelcheck/relation"
)

func init() {
	model.Register(LonelyModel{}, WrongKeyModel{}, PanicModel{}, BadgeModel{}, HolderModel{}, ThroughModel{}, ResultModel{}, AccessorModel{})
}

var ErrBroken = errors.New("broken relation")

// LonelyModel ParentModel has no relation back to it
type LonelyModel struct {
	model.Base
	ID            uint
	ParentModelID uint
}

func (l *LonelyModel) Parent() *model.Relationship {
	return l.BelongsTo(&testmodels.ParentModel{})
}

// WrongKeyModel references a column missing from its table
type WrongKeyModel struct {
	model.Base
	ID uint
}

func (w *WrongKeyModel) Parent() *model.Relationship {
	return w.BelongsTo(&testmodels.ParentModel{}, model.ForeignKey("missing_id"))
}

type PanicModel struct {
	model.Base
	ID uint
}

func (p *PanicModel) Explode() *model.Relationship {
	panic("explode")
}

func (p *PanicModel) Failing() (*model.Relationship, error) {
	return nil, ErrBroken
}

func (p *PanicModel) Nothing() *model.Relationship {
	return nil
}

// BadgeModel belongs to HolderModel, but HolderModel answers with a morph relation
type BadgeModel struct {
	model.Base
	ID            uint
	HolderModelID uint
}

func (b *BadgeModel) Holder() *model.Relationship {
	return b.BelongsTo(&HolderModel{})
}

type HolderModel struct {
	model.Base
	ID            uint
	BadgeableID   uint
	BadgeableType string
}

func (h *HolderModel) Badgeable() *model.Relationship {
	return h.MorphTo("Badgeable", &BadgeModel{})
}

// ThroughModel reaches children through parents
type ThroughModel struct {
	model.Base
	ID uint
}

func (t *ThroughModel) Children() *model.Relationship {
	return t.HasManyThrough(&testmodels.ChildModel{}, &testmodels.ParentModel{})
}

// ResultModel returns a relation whose result is not a collection
type ResultModel struct {
	model.Base
	ID uint
}

func (r *ResultModel) Names(ctx context.Context) model.Relation {
	return namesRelation{}
}

type namesRelation struct{}

func (namesRelation) Kind() relation.Kind {
	return relation.HasMany
}

func (namesRelation) Target() reflect.Type {
	return reflect.TypeOf(ResultModel{})
}

func (namesRelation) FetchAll(context.Context) (interface{}, error) {
	return []string{"a", "b"}, nil
}

var ErrTargetExploded = errors.New("target exploded")

// AccessorModel returns relations whose accessors misbehave
type AccessorModel struct {
	model.Base
	ID uint
}

func (a *AccessorModel) Exploding() model.Relation {
	return accessorRelation{explode: true}
}

func (a *AccessorModel) Untargeted() model.Relation {
	return accessorRelation{}
}

type accessorRelation struct {
	explode bool
}

func (accessorRelation) Kind() relation.Kind {
	return relation.HasMany
}

func (r accessorRelation) Target() reflect.Type {
	if r.explode {
		panic(ErrTargetExploded)
	}
	return nil
}

func (accessorRelation) FetchAll(context.Context) (interface{}, error) {
	return nil, ErrBroken
}
