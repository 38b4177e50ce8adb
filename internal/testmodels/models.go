// Package testmodels fixture models, every relation declared here has its back relation
package testmodels

import (
	"fmt"

	"gorm.io/modelcheck/model"
)

func init() {
	model.RegisterBase(AbstractModel{})
	model.Register(ParentModel{}, ChildModel{}, PostModel{}, CommentModel{}, RoleModel{}, UserModel{})
}

// AbstractModel embedded by models that share behaviour, never listed
type AbstractModel struct {
	model.Base
}

type ParentModel struct {
	AbstractModel
	ID   uint `gorm:"primaryKey"`
	Name string
}

// Children returns an interface, the relation is only known at runtime
func (p *ParentModel) Children() interface{} {
	if p.Name == "no children" {
		return false
	}
	return p.HasMany(&ChildModel{})
}

func (p *ParentModel) MethodHasInputParams(input string) string {
	panic(fmt.Sprintf("MethodHasInputParams(%q) must not be invoked", input))
}

func (p *ParentModel) MethodDoesntReturnRelation() interface{} {
	return false
}

func (p *ParentModel) Label() string {
	panic("Label must not be invoked")
}

type ChildModel struct {
	model.Base
	ID            uint
	ParentModelID uint
	Name          string
}

func (c *ChildModel) Parent() *model.Relationship {
	return c.BelongsTo(&ParentModel{})
}

type PostModel struct {
	model.Base
	ID    uint
	Title string
}

func (p *PostModel) Comments() model.Relation {
	return p.MorphMany(&CommentModel{}, "Commentable")
}

type CommentModel struct {
	model.Base
	ID              uint
	Body            string
	CommentableID   uint
	CommentableType string
}

func (c *CommentModel) Commentable() *model.Relationship {
	return c.MorphTo("Commentable", &PostModel{})
}

type RoleModel struct {
	model.Base
	ID   uint
	Name string
}

func (r *RoleModel) Users() (*model.Relationship, error) {
	return r.BelongsToMany(&UserModel{}), nil
}

type UserModel struct {
	model.Base
	ID   uint
	Name string
}

func (u *UserModel) Roles() *model.Relationship {
	return u.BelongsToMany(&RoleModel{})
}
